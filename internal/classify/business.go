package classify

import "github.com/ppiankov/adscout/internal/model"

// BusinessPredicate decides whether an account is worth inspecting
type BusinessPredicate func(model.AccountSignals) bool

// NewBusinessPredicate builds the predicate described by cfg. With both
// signals enabled an account passes on either one. A disabled predicate,
// or one with no signal enabled, passes every account.
func NewBusinessPredicate(cfg model.BusinessConfig) BusinessPredicate {
	if !cfg.Enabled || (!cfg.ContactIndicator && !cfg.ExternalLink) {
		return func(model.AccountSignals) bool { return true }
	}

	return func(s model.AccountSignals) bool {
		if cfg.ContactIndicator && s.ContactIndicators > 0 {
			return true
		}
		return cfg.ExternalLink && s.ExternalLinks > 0
	}
}
