package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/model"
	"github.com/ppiankov/adscout/internal/output"
)

// Digester writes the optional lead digest
type Digester interface {
	Generate(ctx context.Context, niche string, stats model.RunStats, records []model.ProfileRecord) (string, error)
}

// RunStore records run history
type RunStore interface {
	SaveRun(ctx context.Context, info model.RunInfo, records []model.ProfileRecord) error
}

// Persister writes a run's artifacts. Only the CSV and JSON files are
// required; digest and history failures are warnings.
type Persister struct {
	DataDir  string
	Prefix   string
	Digester Digester // Optional
	Store    RunStore // Optional
	Logger   *zap.Logger
	Out      io.Writer
}

// Persist saves the run's records. It runs to completion even when ctx was
// canceled, so an interrupted run keeps what it collected.
func (p *Persister) Persist(ctx context.Context, run *Run) error {
	ctx = context.WithoutCancel(ctx)
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	at := run.FinishedAt
	if at.IsZero() {
		at = run.StartedAt
	}
	run.Paths = output.PathsFor(p.DataDir, run.Label(), p.Prefix, at)

	if err := output.Save(run.Records, run.Paths); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	fmt.Fprintf(out, "✓ Wrote CSV: %s\n", run.Paths.CSV)
	fmt.Fprintf(out, "✓ Wrote JSON: %s\n", run.Paths.JSON)

	if p.Digester != nil && len(run.Records) > 0 {
		doc, err := p.Digester.Generate(ctx, run.Label(), run.Stats, run.Records)
		if err == nil {
			err = os.WriteFile(run.Paths.Digest, []byte(doc), 0o644)
		}
		if err != nil {
			logger.Warn("digest failed", zap.Error(err))
			fmt.Fprintf(out, "✗ Digest skipped: %v\n", err)
		} else {
			fmt.Fprintf(out, "✓ Wrote digest: %s\n", run.Paths.Digest)
		}
	}

	if p.Store != nil {
		if err := p.Store.SaveRun(ctx, run.Info(), run.Records); err != nil {
			logger.Warn("run history not saved", zap.String("run", run.ID), zap.Error(err))
			fmt.Fprintf(out, "✗ Run history not saved: %v\n", err)
		}
	}
	return nil
}
