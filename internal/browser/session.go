// Package browser abstracts the single browser session the pipeline drives.
// Selectors that start with "/" or "(" are XPath, everything else is CSS.
package browser

import (
	"context"
	"strings"
	"time"
)

// Session is one browser tab owned by the pipeline for a whole run
type Session interface {
	// Navigate loads url and waits for the load event
	Navigate(ctx context.Context, url string) error
	// Find returns the first match without waiting
	Find(ctx context.Context, selector string) (Element, error)
	// FindAll returns every current match, possibly none
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// WaitFor polls until selector matches or timeout elapses
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// HTML returns the serialized document
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Element is a node handle inside the current page
type Element interface {
	Text() (string, error)
	// Attribute returns "" when the attribute is absent
	Attribute(name string) (string, error)
	Click() error
	Input(text string) error
}

// IsXPath reports whether selector is an XPath expression
func IsXPath(selector string) bool {
	s := strings.TrimSpace(selector)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(")
}
