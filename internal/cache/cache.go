// Package cache implements the incremental-analysis cache from §4.5:
// content-hash keyed, TTL-evicted, atomically persisted one-file-per-entry
// to a local cache directory. The atomic temp-file-then-rename persistence
// idiom and the hourly housekeeping ticker are grounded on the teacher's
// state-snapshot writer, generalized to SHA-256 content addressing per the
// cache-entry naming rule §4.5 spells out.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
)

const (
	cacheHitTTL         = 24 * time.Hour
	housekeepingMaxAge  = 7 * 24 * time.Hour
	housekeepingPeriod  = time.Hour
	cacheEntryVersion   = 1
)

// FileAnalysisState is one cache entry (§3, §4.5). Field names are
// camelCase on the wire per §6's "Cache entries ... field names camelCase".
type FileAnalysisState struct {
	Version      int                `json:"version"`
	Path         string             `json:"path"`
	ContentHash  string             `json:"contentHash"`
	Mtime        time.Time          `json:"mtime"`
	LastAnalyzed time.Time          `json:"lastAnalyzed"`
	Results      []*analyzer.Result `json:"results"`
}

// Stats reports the cache's size and hit/miss counters (§4.5 stats()).
type Stats struct {
	InMemoryEntries int
	OnDiskBytes     int64
	Hits            int64
	Misses          int64
}

// Cache is the incremental-analysis cache. The zero value is not usable;
// construct with New.
type Cache struct {
	dir string

	mu      sync.Mutex // serialises all mutations (§4.5 "single async mutex")
	entries map[string]*FileAnalysisState

	hits   int64
	misses int64

	stopHousekeeping chan struct{}
}

// New creates a Cache persisting entries under dir, loading any entries
// already on disk into memory. dir is created if absent.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", dir, err)
	}
	c := &Cache{dir: dir, entries: make(map[string]*FileAnalysisState)}
	c.loadAll()
	return c, nil
}

// StartHousekeeping launches the hourly ticker described in §4.5. Call
// Stop to end it.
func (c *Cache) StartHousekeeping(ctx context.Context) {
	c.stopHousekeeping = make(chan struct{})
	ticker := time.NewTicker(housekeepingPeriod)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.housekeep()
			case <-c.stopHousekeeping:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the housekeeping goroutine, if running.
func (c *Cache) Stop() {
	if c.stopHousekeeping != nil {
		close(c.stopHousekeeping)
	}
}

// ContentHash computes the cache's content-addressing hash for a set of
// normalized lines (§4.5 step 1): SHA-256 of the lines joined with "\n",
// base64-encoded.
func ContentHash(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Lookup returns the cached entry for path and whether it is a hit given
// the freshly computed content hash and the file's current mtime
// (§4.5 step 3). A hit increments the hit counter; a miss increments the
// miss counter.
func (c *Cache) Lookup(path, contentHash string, currentMtime time.Time) ([]*analyzer.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		c.misses++
		return nil, false
	}
	fresh := entry.ContentHash == contentHash &&
		!currentMtime.After(entry.Mtime) &&
		time.Since(entry.LastAnalyzed) < cacheHitTTL
	if !fresh {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.Results, true
}

// Store records a fresh analysis result set and persists it asynchronously
// (§4.5 step 4: "persist asynchronously"; §5: "must not block the
// caller's completion").
func (c *Cache) Store(path, contentHash string, mtime time.Time, results []*analyzer.Result) {
	entry := &FileAnalysisState{
		Version:      cacheEntryVersion,
		Path:         path,
		ContentHash:  contentHash,
		Mtime:        mtime,
		LastAnalyzed: time.Now(),
		Results:      results,
	}

	c.mu.Lock()
	c.entries[path] = entry
	c.mu.Unlock()

	go c.persist(entry)
}

// Clear evicts path's entry, or every entry if path is empty (§4.5 clear()).
func (c *Cache) Clear(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == "" {
		for p := range c.entries {
			os.Remove(c.entryFilePath(p))
		}
		c.entries = make(map[string]*FileAnalysisState)
		return
	}
	delete(c.entries, path)
	os.Remove(c.entryFilePath(path))
}

// StatsSnapshot returns the current in-memory/on-disk/hit-miss counters.
func (c *Cache) StatsSnapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var onDisk int64
	entriesDir, err := os.ReadDir(c.dir)
	if err == nil {
		for _, e := range entriesDir {
			if info, err := e.Info(); err == nil {
				onDisk += info.Size()
			}
		}
	}
	return Stats{
		InMemoryEntries: len(c.entries),
		OnDiskBytes:     onDisk,
		Hits:            c.hits,
		Misses:          c.misses,
	}
}

// entryFilePath implements the naming rule in §4.5:
// "<basename>_<16-char-url-safe-prefix-of-SHA256(path)>.cache".
func (c *Cache) entryFilePath(path string) string {
	base := filepath.Base(path)
	sum := sha256.Sum256([]byte(path))
	prefix := hex.EncodeToString(sum[:])[:16]
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.cache", base, prefix))
}

// persist atomically writes entry to disk via a temp file + rename, so a
// crash mid-write never leaves a corrupt entry in its final location.
func (c *Cache) persist(entry *FileAnalysisState) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	final := c.entryFilePath(entry.Path)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	os.Rename(tmp, final)
}

// loadAll populates the in-memory map from whatever entries already exist
// on disk, deleting any file that fails to decode (§4.5 "Corrupt files are
// deleted silently on load") or whose version doesn't match (§6).
func (c *Cache) loadAll() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cache") {
			continue
		}
		full := filepath.Join(c.dir, e.Name())
		data, err := os.ReadFile(full)
		if err != nil {
			continue
		}
		var state FileAnalysisState
		if err := json.Unmarshal(data, &state); err != nil || state.Version != cacheEntryVersion {
			os.Remove(full)
			continue
		}
		c.entries[state.Path] = &state
	}
}

// housekeep removes stale or orphaned entries (§4.5): older than 7 days,
// or whose underlying file no longer exists.
func (c *Cache) housekeep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-housekeepingMaxAge)
	var stale []string
	for path, entry := range c.entries {
		if entry.LastAnalyzed.Before(cutoff) {
			stale = append(stale, path)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale) // deterministic removal order, useful for tests/logging
	for _, path := range stale {
		delete(c.entries, path)
		os.Remove(c.entryFilePath(path))
	}
}
