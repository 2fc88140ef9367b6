package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/adscout/internal/model"
)

func openTest(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history", "adscout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func runInfo(id string, started time.Time) model.RunInfo {
	return model.RunInfo{
		ID:         id,
		Niche:      "moda praia",
		Status:     model.RunCompleted,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Minute),
		Stats:      model.RunStats{Accounts: 5, Posts: 12, Ads: 4, Positives: 7, Profiles: 2},
		CSVPath:    "instagram_data/moda_praia/a.csv",
		JSONPath:   "instagram_data/moda_praia/a.json",
	}
}

func leads() []model.ProfileRecord {
	at := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	return []model.ProfileRecord{
		{Profile: model.Profile{Username: "ana", Email: "ana@x.com", Followers: 10}, SourceComment: model.Comment{Text: "amei", Score: 0.5}, CollectedAt: at},
		{Profile: model.Profile{Username: "bia"}, SourceComment: model.Comment{Text: "top"}, CollectedAt: at},
	}
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	older := runInfo("run-1", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	newer := runInfo("run-2", time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveRun(ctx, older, leads()))
	require.NoError(t, s.SaveRun(ctx, newer, nil))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	if diff := cmp.Diff([]model.RunInfo{newer, older}, runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRun_ReplacesSameID(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	info := runInfo("run-1", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, s.SaveRun(ctx, info, leads()))
	info.Status = model.RunInterrupted
	require.NoError(t, s.SaveRun(ctx, info, leads()[:1]))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunInterrupted, runs[0].Status)

	seen, err := s.SeenUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"ana": true}, seen)
}

func TestListRuns_Limit(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveRun(ctx, runInfo(id, base.Add(time.Duration(i)*time.Hour)), nil))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}
