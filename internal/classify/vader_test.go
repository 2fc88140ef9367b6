package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/adscout/internal/model"
)

func TestVader_Polarity(t *testing.T) {
	v := NewVader()

	tests := []struct {
		text string
		sign int
	}{
		{"I love this so much!", 1},
		{"This is fine and useful", 1},
		{"Really pleased with my order", 1},
		{"This is terrible", -1},
		{"not good", -1},
		{"the box arrived on tuesday", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := v.Score(tt.text)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
			switch tt.sign {
			case 1:
				assert.Greater(t, got, 0.0)
			case -1:
				assert.Less(t, got, 0.0)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestVader_ThresholdLeads(t *testing.T) {
	c := NewPositivityClassifier(model.DefaultConfig().Classifier, NewVader())

	tests := []struct {
		text     string
		positive bool
	}{
		{"This is fine and useful", true},
		{"Really pleased with my order", true},
		{"Such a lovely store, very happy with it", true},
		{"Delivery was terrible and slow", false},
		{"where did you buy it", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := c.Classify(tt.text)
			assert.True(t, got.Candidate)
			assert.Equal(t, tt.positive, got.Positive)
			if tt.positive {
				assert.Greater(t, got.Score, 0.3)
			}
		})
	}
}
