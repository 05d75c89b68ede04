// Package orchestrator runs a selected subset of analyzers against one
// parsed crash log and aggregates their results (§4.4). The worker-pool
// semaphore pattern is grounded on the analysis engine's concurrency
// limiter in the broader example pack (a buffered channel bounding
// in-flight goroutines, with sync.WaitGroup for completion), generalized
// here to golang.org/x/sync/errgroup's SetLimit. Per-analyzer panics are
// recovered in runOne instead of crashing the run.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/logging"
	"github.com/scanner111/scanner111/internal/parser"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// defaultMaxParallel mirrors §4.4: number of CPU cores, clamped to [1, 10].
func defaultMaxParallel() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// Request is the input to a single orchestration run (§4.4).
type Request struct {
	InputPath         string
	AnalysisKind      types.AnalysisKind
	SelectedAnalyzers []string // empty selects every analyzer supporting AnalysisKind
	GameName          string
	XSEAcronym        string
	MaxParallel       int // 0 uses the settings-overridable default
}

// Result is the aggregated output of one run (§4.4 OrchestrationResult).
type Result struct {
	Results      []*analyzer.Result
	ParsedLog    *parser.ParsedCrashLog
	Duration     time.Duration
	WasCancelled bool
}

// Orchestrator owns an analyzer registry and the settings view analyzers
// read from.
type Orchestrator struct {
	Registry *analyzer.Registry
	Settings *settings.View
	Logger   logging.Logger
}

// New builds an Orchestrator.
func New(registry *analyzer.Registry, view *settings.View, log logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.NewNoop()
	}
	return &Orchestrator{Registry: registry, Settings: view, Logger: log}
}

// RunAnalysis executes req against the Orchestrator's registry (§4.4).
func (o *Orchestrator) RunAnalysis(ctx context.Context, req Request) *Result {
	start := time.Now()

	parsed, err := parser.Parse(req.InputPath, req.XSEAcronym)
	if err != nil {
		return &Result{
			Results:  []*analyzer.Result{orchestratorFailure(err)},
			Duration: time.Since(start),
		}
	}

	selected := o.Registry.Filter(req.SelectedAnalyzers)
	var runnable []analyzer.Analyzer
	for _, a := range selected {
		if analyzer.Supports(a, req.AnalysisKind) {
			runnable = append(runnable, a)
		}
	}

	maxParallel := req.MaxParallel
	if maxParallel <= 0 {
		maxParallel = settings.Get(o.Settings, settings.ScopeSettings, "max_parallel", defaultMaxParallel())
	}
	if maxParallel < 1 {
		maxParallel = 1
	}

	// One AnalysisContext is built for the whole run and handed to every
	// analyzer (§3: "the Orchestrator owns the AnalysisContext for the
	// duration of one run; analyzers borrow it"). Building a fresh context
	// per analyzer would give each one an isolated, empty SharedData and
	// make cross-analyzer shared_data facts unobservable.
	actx := analyzer.NewAnalysisContext(ctx, parsed, o.Settings, req.GameName, req.AnalysisKind, o.Logger)
	results := o.runAll(actx, runnable, maxParallel)

	sort.Slice(results, func(i, j int) bool {
		pi, pj := priorityOf(runnable, results[i].AnalyzerName), priorityOf(runnable, results[j].AnalyzerName)
		if pi != pj {
			return pi > pj
		}
		return strings.ToLower(results[i].AnalyzerName) < strings.ToLower(results[j].AnalyzerName)
	})

	return &Result{
		Results:      results,
		ParsedLog:    parsed,
		Duration:     time.Since(start),
		WasCancelled: ctx.Err() != nil,
	}
}

func (o *Orchestrator) runAll(actx *analyzer.AnalysisContext, analyzers []analyzer.Analyzer, maxParallel int) []*analyzer.Result {
	results := make([]*analyzer.Result, len(analyzers))

	var g errgroup.Group // cancellation is polled by analyzers, not forced (§4.4/§5)
	g.SetLimit(maxParallel)

	for i, a := range analyzers {
		i, a := i, a
		g.Go(func() error {
			if actx.Cancelled() {
				results[i] = analyzer.Skipped(a.Name(), "cancelled")
				return nil
			}
			results[i] = o.runOne(a, actx)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runOne invokes a single analyzer against the run's shared AnalysisContext
// with panic isolation (§4.2, §4.4).
func (o *Orchestrator) runOne(a analyzer.Analyzer, actx *analyzer.AnalysisContext) (result *analyzer.Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = analyzer.Failed(a.Name(), time.Since(start), fmt.Errorf("panic: %v", r))
		}
	}()

	return a.Analyze(actx)
}

func priorityOf(analyzers []analyzer.Analyzer, name string) int {
	for _, a := range analyzers {
		if a.Name() == name {
			return a.Priority()
		}
	}
	return 0
}

// orchestratorFailure builds the synthetic "orchestrator" result used when
// the run fails before any analyzer starts (§4.4).
func orchestratorFailure(err error) *analyzer.Result {
	return &analyzer.Result{
		AnalyzerName: "orchestrator",
		Status:       types.StatusFailed,
		Severity:     types.SeverityError,
		Errors:       []string{err.Error()},
		Metadata:     map[string]string{},
	}
}
