package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/adscout/internal/model"
	"github.com/ppiankov/adscout/internal/output"
)

// Run carries the state of one scrape from discovery to persistence. It is
// owned by a single goroutine.
type Run struct {
	ID         string
	Niche      string
	Hashtag    string // Hashtag mode when set
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      model.RunStats
	Records    []model.ProfileRecord
	Paths      output.Paths
}

// NewRun starts a run for a niche, or for a hashtag when tag is not empty
func NewRun(niche, tag string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Niche:     niche,
		Hashtag:   tag,
		StartedAt: time.Now(),
	}
}

// Label names the run's output directory
func (r *Run) Label() string {
	if r.Niche == "" && r.Hashtag != "" {
		return "hashtag_" + strings.TrimPrefix(r.Hashtag, "#")
	}
	return r.Niche
}

// Info is the history entry for the run
func (r *Run) Info() model.RunInfo {
	return model.RunInfo{
		ID:         r.ID,
		Niche:      r.Niche,
		Hashtag:    r.Hashtag,
		Status:     r.Status,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Stats:      r.Stats,
		CSVPath:    r.Paths.CSV,
		JSONPath:   r.Paths.JSON,
	}
}
