// Package session records one CLI invocation's results as a JSON file
// under a sessions directory (§6 "Session files: JSON { id(UUID), logFile,
// startTime(ISO-8601 UTC), endTime?, duration?, results: [...] }"). The
// atomic-write idiom is shared with internal/cache; session IDs use
// google/uuid.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scanner111/scanner111/internal/analyzer"
)

// Session is one recorded run.
type Session struct {
	ID        uuid.UUID          `json:"id"`
	LogFile   string             `json:"logFile"`
	StartTime time.Time          `json:"startTime"`
	EndTime   *time.Time         `json:"endTime,omitempty"`
	Duration  *time.Duration     `json:"duration,omitempty"`
	Results   []*analyzer.Result `json:"results"`
}

// New starts a session for logFile.
func New(logFile string) *Session {
	return &Session{
		ID:        uuid.New(),
		LogFile:   logFile,
		StartTime: time.Now().UTC(),
	}
}

// Finish records the end time, duration, and result set.
func (s *Session) Finish(results []*analyzer.Result) {
	end := time.Now().UTC()
	dur := end.Sub(s.StartTime)
	s.EndTime = &end
	s.Duration = &dur
	s.Results = results
}

// Store persists sessions as one JSON file per run under dir.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes s to <dir>/<id>.json, atomically (temp file + rename).
func (st *Store) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshalling %s: %w", s.ID, err)
	}
	final := filepath.Join(st.dir, s.ID.String()+".json")
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("session: writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, final)
}

// Load reads a previously saved session by ID.
func (st *Store) Load(id uuid.UUID) (*Session, error) {
	data, err := os.ReadFile(filepath.Join(st.dir, id.String()+".json"))
	if err != nil {
		return nil, fmt.Errorf("session: reading %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decoding %s: %w", id, err)
	}
	return &s, nil
}
