package model

// AdResult is the outcome of advertisement detection for one post
type AdResult struct {
	IsAd            bool   `json:"is_ad"`
	Keyword         string `json:"keyword,omitempty"` // First ad keyword found in the caption
	PaidPartnership bool   `json:"paid_partnership"`
	CallToAction    bool   `json:"call_to_action"`
	CaptionFailed   bool   `json:"caption_failed"` // Caption unreadable, forced NotAd
}

// PositivityResult is the outcome of positivity classification for one comment
type PositivityResult struct {
	Candidate bool    `json:"candidate"`         // False when the pre-filter discarded the comment
	Positive  bool    `json:"positive"`          // Score above threshold or keyword hit
	Score     float64 `json:"score"`             // Compound score (zero when not a candidate)
	Keyword   string  `json:"keyword,omitempty"` // Positive keyword that matched, if any
}
