// Package stats implements the statistics store named in §6: "a single
// local key-value/tabular store" recording one row per analyzed log. It is
// realised as an append-only JSON-lines file — the simplest tabular
// encoding that needs no schema migration story, matching the teacher's
// preference for flat JSON state files over an embedded database.
package stats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Row is one entry in the statistics store (§6 column list).
type Row struct {
	Timestamp         time.Time `json:"timestamp"`
	LogFilePath       string    `json:"logFilePath"`
	GameType          string    `json:"gameType"`
	TotalIssuesFound  int       `json:"totalIssuesFound"`
	Critical          int       `json:"critical"`
	Warning           int       `json:"warning"`
	Info              int       `json:"info"`
	ProcessingTimeMs  int64     `json:"processingTimeMs"`
	WasSolved         bool      `json:"wasSolved"`
	PrimaryIssueType  string    `json:"primaryIssueType"`
}

// Store appends rows to a JSON-lines file and can replay them back.
type Store struct {
	path string
}

// NewStore opens (creating if absent) the JSON-lines file at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("stats: creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stats: opening %s: %w", path, err)
	}
	f.Close()
	return &Store{path: path}, nil
}

// Append writes one row, fire-and-forget style: a single JSON object per
// line, flushed immediately so a crash loses at most the in-flight write.
func (s *Store) Append(row Row) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("stats: opening %s: %w", s.path, err)
	}
	defer f.Close()

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("stats: marshalling row: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("stats: writing row: %w", err)
	}
	return nil
}

// All reads back every row, in append order.
func (s *Store) All() ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("stats: opening %s: %w", s.path, err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			continue // a corrupt row is skipped, not fatal, mirroring cache's tolerance for bad on-disk state
		}
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}
