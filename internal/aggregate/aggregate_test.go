package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/model"
)

const testBase = "https://www.instagram.com"

type fakeLookup struct {
	profiles map[string]model.Profile
	errs     map[string]error
	calls    []string
}

func (f *fakeLookup) Lookup(_ context.Context, username string) (model.Profile, error) {
	f.calls = append(f.calls, username)
	if err, ok := f.errs[username]; ok {
		return model.Profile{}, err
	}
	return f.profiles[username], nil
}

func newTestAggregator(t *testing.T, lookup ProfileLookup) *Aggregator {
	a := New(lookup, fault.DefaultPolicy(), testBase, zaptest.NewLogger(t))
	a.now = func() time.Time { return time.Date(2025, 3, 4, 10, 20, 30, 999, time.UTC) }
	return a
}

func TestAggregator_DuplicateKeepsFirstEvidence(t *testing.T) {
	lookup := &fakeLookup{profiles: map[string]model.Profile{
		"maria": {Username: "maria", Bio: "hi", Followers: 10},
	}}
	a := newTestAggregator(t, lookup)
	ctx := context.Background()

	first := model.Comment{Author: "maria", Text: "Amei!", PostURL: testBase + "/p/1/", Score: 0.6}
	second := model.Comment{Author: "maria", Text: "Lindo demais", PostURL: testBase + "/p/2/", Score: 0.7}

	added, err := a.Add(ctx, first)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = a.Add(ctx, second)
	require.NoError(t, err)
	assert.False(t, added)

	records := a.Records()
	require.Len(t, records, 1)
	assert.Equal(t, first, records[0].SourceComment)
	assert.Equal(t, []string{"maria"}, lookup.calls, "lookup runs once per username")
}

func TestAggregator_CaseInsensitiveIdentifier(t *testing.T) {
	a := newTestAggregator(t, &fakeLookup{})
	ctx := context.Background()

	_, err := a.Add(ctx, model.Comment{Author: "Maria"})
	require.NoError(t, err)
	added, err := a.Add(ctx, model.Comment{Author: "maria"})
	require.NoError(t, err)
	assert.False(t, added)
	assert.True(t, a.Seen("MARIA"))
}

func TestAggregator_PreservesInsertionOrder(t *testing.T) {
	a := newTestAggregator(t, &fakeLookup{})
	ctx := context.Background()

	for _, name := range []string{"zoe", "ana", "bruno", "ana", "carla"} {
		_, err := a.Add(ctx, model.Comment{Author: name})
		require.NoError(t, err)
	}

	var got []string
	for _, r := range a.Records() {
		got = append(got, r.Username)
	}
	if diff := cmp.Diff([]string{"zoe", "ana", "bruno", "carla"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_MergesProfileAndEmail(t *testing.T) {
	lookup := &fakeLookup{profiles: map[string]model.Profile{
		"loja": {
			Username:  "loja",
			Bio:       "contact: jane.doe@example.com for info",
			Followers: 1200,
			Following: 80,
			Posts:     45,
		},
	}}
	a := newTestAggregator(t, lookup)

	c := model.Comment{Author: "loja", Text: "great stuff", PostURL: testBase + "/p/x/", Score: 0.62}
	_, err := a.Add(context.Background(), c)
	require.NoError(t, err)

	want := model.ProfileRecord{
		Profile: model.Profile{
			Username:    "loja",
			DisplayName: "loja",
			Bio:         "contact: jane.doe@example.com for info",
			Followers:   1200,
			Following:   80,
			Posts:       45,
			Email:       "jane.doe@example.com",
			ProfileURL:  testBase + "/loja/",
		},
		SourceComment: c,
		CollectedAt:   time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC),
	}
	if diff := cmp.Diff(want, a.Records()[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_LookupFailureDegrades(t *testing.T) {
	lookup := &fakeLookup{errs: map[string]error{
		"ghost": fault.NotFound("profile bio", errors.New("element not found")),
	}}
	a := newTestAggregator(t, lookup)

	added, err := a.Add(context.Background(), model.Comment{Author: "ghost", Text: "love it"})
	require.NoError(t, err)
	assert.True(t, added)

	r := a.Records()[0]
	assert.Equal(t, "ghost", r.Username)
	assert.Equal(t, testBase+"/ghost/", r.ProfileURL)
	assert.Zero(t, r.Followers)
	assert.Equal(t, 1, a.LookupFailures())
}

func TestAggregator_AbortClassFailureStops(t *testing.T) {
	lookup := &fakeLookup{errs: map[string]error{
		"x": fault.New(fault.KindAuthentication, "session", errors.New("logged out")),
	}}
	a := newTestAggregator(t, lookup)

	added, err := a.Add(context.Background(), model.Comment{Author: "x"})
	require.Error(t, err)
	assert.False(t, added)
	assert.Empty(t, a.Records())
	assert.False(t, a.Seen("x"), "aborted lookup leaves no record")
}

func TestAggregator_EmptyAuthorIgnored(t *testing.T) {
	lookup := &fakeLookup{}
	a := newTestAggregator(t, lookup)

	added, err := a.Add(context.Background(), model.Comment{Author: "  "})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, lookup.calls)
}

func TestAggregator_RecordsIsCopy(t *testing.T) {
	a := newTestAggregator(t, &fakeLookup{})
	_, err := a.Add(context.Background(), model.Comment{Author: "a"})
	require.NoError(t, err)

	got := a.Records()
	got[0].Username = "mutated"
	assert.Equal(t, "a", a.Records()[0].Username)
}
