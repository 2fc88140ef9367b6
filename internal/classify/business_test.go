package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/adscout/internal/model"
)

func TestBusinessPredicate(t *testing.T) {
	contact := model.AccountSignals{ContactIndicators: 1}
	link := model.AccountSignals{ExternalLinks: 2}
	none := model.AccountSignals{}

	tests := []struct {
		name string
		cfg  model.BusinessConfig
		sig  model.AccountSignals
		want bool
	}{
		{"default contact", model.DefaultConfig().Business, contact, true},
		{"default link", model.DefaultConfig().Business, link, true},
		{"default none", model.DefaultConfig().Business, none, false},
		{"disabled passes all", model.BusinessConfig{Enabled: false}, none, true},
		{"nothing enabled passes all", model.BusinessConfig{Enabled: true}, none, true},
		{"contact only ignores link", model.BusinessConfig{Enabled: true, ContactIndicator: true}, link, false},
		{"link only ignores contact", model.BusinessConfig{Enabled: true, ExternalLink: true}, contact, false},
		{"link only accepts link", model.BusinessConfig{Enabled: true, ExternalLink: true}, link, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBusinessPredicate(tt.cfg)(tt.sig))
		})
	}
}
