package model

import "time"

// Run statuses
const (
	RunCompleted   = "completed"
	RunInterrupted = "interrupted"
	RunFailed      = "failed"
)

// RunStats counts what a run saw at each stage
type RunStats struct {
	Accounts        int `json:"accounts"`         // Accounts discovered
	SkippedAccounts int `json:"skipped_accounts"` // Rejected by the business predicate
	Posts           int `json:"posts"`            // Posts inspected
	Ads             int `json:"ads"`
	CaptionFailures int `json:"caption_failures"`
	Comments        int `json:"comments"`   // Comments read
	Candidates      int `json:"candidates"` // Comments past the pre-filter
	Positives       int `json:"positives"`
	Profiles        int `json:"profiles"`        // Distinct records
	LookupFailures  int `json:"lookup_failures"` // Profiles recorded with minimal data
	Degraded        int `json:"degraded"`        // Boundary failures that fell back to defaults
}

// RunInfo describes a finished run for the history
type RunInfo struct {
	ID         string    `json:"id"`
	Niche      string    `json:"niche"`
	Hashtag    string    `json:"hashtag,omitempty"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Stats      RunStats  `json:"stats"`
	CSVPath    string    `json:"csv_path"`
	JSONPath   string    `json:"json_path"`
}
