// Package output persists a run's profile records as CSV and JSON files
// holding the same rows in the same order.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/adscout/internal/model"
)

// TimestampLayout names output files
const TimestampLayout = "20060102_150405"

// Paths are the artifacts of one run
type Paths struct {
	Dir    string `json:"dir"`
	CSV    string `json:"csv"`
	JSON   string `json:"json"`
	Digest string `json:"digest"`
}

// PathsFor builds <dataDir>/<niche>/<prefix>_<timestamp>.{csv,json}.
// Spaces and path separators in the niche become underscores.
func PathsFor(dataDir, niche, prefix string, at time.Time) Paths {
	dir := filepath.Join(dataDir, DirName(niche))
	stem := fmt.Sprintf("%s_%s", prefix, at.Format(TimestampLayout))
	return Paths{
		Dir:    dir,
		CSV:    filepath.Join(dir, stem+".csv"),
		JSON:   filepath.Join(dir, stem+".json"),
		Digest: filepath.Join(dir, stem+".digest.md"),
	}
}

// DirName maps a niche to its directory name
func DirName(niche string) string {
	name := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(strings.TrimSpace(niche))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// Save writes both files, creating the directory. Files are written even
// when records is empty.
func Save(records []model.ProfileRecord, paths Paths) error {
	if err := os.MkdirAll(paths.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(paths.CSV, func(w io.Writer) error { return WriteCSV(w, records) }); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := writeFile(paths.JSON, func(w io.Writer) error { return WriteJSON(w, records) }); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Columns is the CSV header
var Columns = []string{
	"username", "full_name", "bio", "followers", "following", "posts_count",
	"is_private", "email", "profile_url", "comment", "sentiment_score",
	"post_url", "collected_at",
}

// WriteCSV writes a header and one row per record
func WriteCSV(w io.Writer, records []model.ProfileRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Username,
			r.DisplayName,
			r.Bio,
			strconv.FormatInt(r.Followers, 10),
			strconv.FormatInt(r.Following, 10),
			strconv.FormatInt(r.Posts, 10),
			strconv.FormatBool(r.IsPrivate),
			r.Email,
			r.ProfileURL,
			r.SourceComment.Text,
			strconv.FormatFloat(r.SourceComment.Score, 'f', 4, 64),
			r.SourceComment.PostURL,
			r.CollectedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records as an indented array. An empty run is "[]".
func WriteJSON(w io.Writer, records []model.ProfileRecord) error {
	if records == nil {
		records = []model.ProfileRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// ReadJSON decodes records written by WriteJSON
func ReadJSON(r io.Reader) ([]model.ProfileRecord, error) {
	var records []model.ProfileRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// LoadJSON reads a records file
func LoadJSON(path string) ([]model.ProfileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadJSON(f)
}
