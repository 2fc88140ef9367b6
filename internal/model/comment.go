package model

// Comment is a single comment read from a post
type Comment struct {
	Author  string  `json:"username"`        // Commenter handle
	Text    string  `json:"comment"`         // Comment body as displayed
	PostURL string  `json:"post_url"`        // Post the comment was read from
	Score   float64 `json:"sentiment_score"` // Compound sentiment score in [-1, 1]
}

// PostSignals is the extractor's view of a single post
type PostSignals struct {
	URL             string `json:"url"`
	Caption         string `json:"caption,omitempty"`
	CaptionErr      error  `json:"-"`                // Set when the caption could not be read
	PaidPartnership bool   `json:"paid_partnership"` // "Paid partnership" marker present
	CallToAction    bool   `json:"call_to_action"`   // Shop Now / Learn More style button present
}

// AccountSignals feeds the business-account predicate
type AccountSignals struct {
	Username          string `json:"username"`
	ContactIndicators int    `json:"contact_indicators"` // Contact / Email / Business elements
	ExternalLinks     int    `json:"external_links"`     // Outbound http(s) links on the profile page
}
