// Package store keeps a history of runs and their leads in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/adscout/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	niche       TEXT NOT NULL,
	hashtag     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	stats       TEXT NOT NULL,
	profiles    INTEGER NOT NULL,
	csv_path    TEXT NOT NULL DEFAULT '',
	json_path   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS leads (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	username     TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	followers    INTEGER NOT NULL DEFAULT 0,
	comment      TEXT NOT NULL DEFAULT '',
	score        REAL NOT NULL DEFAULT 0,
	post_url     TEXT NOT NULL DEFAULT '',
	collected_at TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS leads_username ON leads(username);`

// SQLite is the run history
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema
func Open(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveRun records a run and its leads in one transaction. Saving the same
// run id again replaces it.
func (s *SQLite) SaveRun(ctx context.Context, info model.RunInfo, records []model.ProfileRecord) error {
	stats, err := json.Marshal(info.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE run_id = ?`, info.ID); err != nil {
		return fmt.Errorf("replace leads: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, info.ID); err != nil {
		return fmt.Errorf("replace run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, niche, hashtag, status, started_at, finished_at, stats, profiles, csv_path, json_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID, info.Niche, info.Hashtag, info.Status,
		formatTime(info.StartedAt), formatTime(info.FinishedAt),
		string(stats), len(records), info.CSVPath, info.JSONPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (run_id, position, username, email, followers, comment, score, post_url, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare lead insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			info.ID, i, r.Username, r.Email, r.Followers,
			r.SourceComment.Text, r.SourceComment.Score, r.SourceComment.PostURL,
			formatTime(r.CollectedAt),
		)
		if err != nil {
			return fmt.Errorf("insert lead %s: %w", r.Username, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns up to limit runs, newest first
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, niche, hashtag, status, started_at, finished_at, stats, csv_path, json_path
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunInfo
	for rows.Next() {
		var (
			info              model.RunInfo
			started, finished string
			stats             string
		)
		if err := rows.Scan(&info.ID, &info.Niche, &info.Hashtag, &info.Status,
			&started, &finished, &stats, &info.CSVPath, &info.JSONPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if info.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if info.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(stats), &info.Stats); err != nil {
			return nil, fmt.Errorf("decode stats for %s: %w", info.ID, err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// SeenUsernames returns every username recorded in any previous run
func (s *SQLite) SeenUsernames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT username FROM leads`)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		seen[u] = true
	}
	return seen, rows.Err()
}

// timeLayout is fixed width so text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
