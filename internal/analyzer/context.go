package analyzer

import (
	"context"
	"sync"

	"github.com/scanner111/scanner111/internal/logging"
	"github.com/scanner111/scanner111/internal/parser"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// SharedData is the single-writer-per-key scratch space analyzers use to
// pass derived facts to later analyzers in the same run (§3
// "AnalysisContext.shared_data"). A key written twice by two different
// analyzers is a coordination bug between them: the second writer wins but
// a warning is logged through the context's Logger rather than panicking,
// since a misbehaving analyzer should not take down the run.
type SharedData struct {
	mu      sync.Mutex
	values  map[string]interface{}
	writers map[string]string
	log     logging.Logger
}

func newSharedData(log logging.Logger) *SharedData {
	return &SharedData{
		values:  make(map[string]interface{}),
		writers: make(map[string]string),
		log:     log,
	}
}

// Set records value under key, attributed to writer. A second write to the
// same key from a different writer is allowed but logged as a warning.
func (s *SharedData) Set(writer, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.writers[key]; ok && prev != writer {
		s.log.Warn("shared_data key %q written by %q after being set by %q", key, writer, prev)
	}
	s.values[key] = value
	s.writers[key] = writer
}

// Get returns the value at key and whether it was set.
func (s *SharedData) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// AnalysisContext is passed by the orchestrator to every analyzer for the
// duration of one run (§3 AnalysisContext). Analyzers must treat it as
// read-mostly except for SharedData, and must poll Cancelled() on any
// long-running loop.
type AnalysisContext struct {
	ParsedLog    *parser.ParsedCrashLog
	Settings     *settings.View
	GameName     string
	Kind         types.AnalysisKind
	Shared       *SharedData
	Logger       logging.Logger
	ctx          context.Context
}

// NewAnalysisContext builds an AnalysisContext for one run. ctx carries the
// cancellation signal the orchestrator uses to abort in-flight analyzers.
func NewAnalysisContext(ctx context.Context, parsed *parser.ParsedCrashLog, view *settings.View, gameName string, kind types.AnalysisKind, log logging.Logger) *AnalysisContext {
	return &AnalysisContext{
		ParsedLog: parsed,
		Settings:  view,
		GameName:  gameName,
		Kind:      kind,
		Shared:    newSharedData(log),
		Logger:    log,
		ctx:       ctx,
	}
}

// Cancelled reports whether the run has been asked to stop. Analyzers
// should check this between expensive steps (e.g. per line of a large
// call stack) and return early with a Skipped result (types.StatusSkipped)
// if true.
func (a *AnalysisContext) Cancelled() bool {
	select {
	case <-a.ctx.Done():
		return true
	default:
		return false
	}
}

// Done returns the context's cancellation channel, for callers that need
// to select on it directly (e.g. inside a worker loop).
func (a *AnalysisContext) Done() <-chan struct{} {
	return a.ctx.Done()
}
