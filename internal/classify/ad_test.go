package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/adscout/internal/model"
)

func TestAdClassifier_Classify(t *testing.T) {
	c := NewAdClassifier(model.DefaultAdKeywords())

	tests := []struct {
		name    string
		sig     model.PostSignals
		wantAd  bool
		wantKw  string
		failed  bool
	}{
		{
			name:   "keyword in caption",
			sig:    model.PostSignals{Caption: "Nova coleção! Link na bio"},
			wantAd: true,
			wantKw: "link na bio",
		},
		{
			name:   "hashtag keyword",
			sig:    model.PostSignals{Caption: "summer vibes #publi"},
			wantAd: true,
			wantKw: "#publi",
		},
		{
			name:   "paid partnership marker only",
			sig:    model.PostSignals{Caption: "sunset", PaidPartnership: true},
			wantAd: true,
		},
		{
			name:   "call to action marker only",
			sig:    model.PostSignals{Caption: "sunset", CallToAction: true},
			wantAd: true,
		},
		{
			name: "plain caption",
			sig:  model.PostSignals{Caption: "morning coffee with friends"},
		},
		{
			name:   "caption unreadable ignores markers",
			sig:    model.PostSignals{CaptionErr: errors.New("not found"), PaidPartnership: true},
			failed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.sig)
			assert.Equal(t, tt.wantAd, got.IsAd)
			assert.Equal(t, tt.wantKw, got.Keyword)
			assert.Equal(t, tt.failed, got.CaptionFailed)
		})
	}
}

func TestAdClassifier_CaseInsensitive(t *testing.T) {
	c := NewAdClassifier([]string{"Shop Now"})

	got := c.Classify(model.PostSignals{Caption: "SHOP NOW while it lasts"})
	assert.True(t, got.IsAd)
	assert.Equal(t, "shop now", got.Keyword)
}

func TestAdClassifier_EmptyKeywordIgnored(t *testing.T) {
	c := NewAdClassifier([]string{""})

	assert.False(t, c.Classify(model.PostSignals{Caption: "anything"}).IsAd)
}
