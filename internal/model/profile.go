package model

import (
	"fmt"
	"time"
)

// Profile holds the attributes read from a commenter's profile page
type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"full_name"`
	Bio         string `json:"bio"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
	Posts       int64  `json:"posts_count"`
	IsPrivate   bool   `json:"is_private"`
	Email       string `json:"email"`
	ProfileURL  string `json:"profile_url"`
}

// ProfileRecord is one output row: a profile merged with the comment that
// made its owner a lead. At most one record exists per username per run.
type ProfileRecord struct {
	Profile
	SourceComment Comment   `json:"source_comment"`
	CollectedAt   time.Time `json:"collected_at"`
}

// ProfileURL builds the canonical profile URL for a username
func ProfileURL(baseURL, username string) string {
	return fmt.Sprintf("%s/%s/", trimSlash(baseURL), username)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
