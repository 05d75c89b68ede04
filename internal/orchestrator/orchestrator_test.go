package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/logging"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

type panicAnalyzer struct{ name string }

func (p panicAnalyzer) Name() string     { return p.name }
func (p panicAnalyzer) Priority() int    { return 0 }
func (p panicAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}
func (p panicAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	panic("boom")
}

type okAnalyzer struct{ name string }

func (o okAnalyzer) Name() string     { return o.name }
func (o okAnalyzer) Priority() int    { return 0 }
func (o okAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}
func (o okAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	return analyzer.Skipped(o.name, "noop")
}

func writeCrashLog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "crash.log")
	content := "Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\nPROBABLE CALL STACK:\n\tframe\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test log: %v", err)
	}
	return path
}

// TestOrchestrator_AnalyzerPanicIsolated covers §8 property 6: a panicking
// analyzer yields exactly one failed-with-error result and doesn't affect
// the others.
func TestOrchestrator_AnalyzerPanicIsolated(t *testing.T) {
	reg := analyzer.NewRegistry()
	reg.MustRegister(panicAnalyzer{name: "Boom"})
	reg.MustRegister(okAnalyzer{name: "Fine"})

	o := New(reg, settings.New(), logging.NewNoop())
	result := o.RunAnalysis(context.Background(), Request{
		InputPath:    writeCrashLog(t),
		AnalysisKind: types.KindCrashLog,
	})

	if len(result.Results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(result.Results))
	}

	var failed, fine int
	for _, r := range result.Results {
		switch r.AnalyzerName {
		case "Boom":
			if r.Status != types.StatusFailed {
				t.Errorf("Boom status = %v, want failed-with-error", r.Status)
			}
			failed++
		case "Fine":
			if r.Status != types.StatusSkipped {
				t.Errorf("Fine status = %v, want skipped", r.Status)
			}
			fine++
		}
	}
	if failed != 1 || fine != 1 {
		t.Fatalf("failed=%d fine=%d, want 1 and 1", failed, fine)
	}
}

// TestOrchestrator_MissingFileYieldsSyntheticFailure covers §4.4's
// synthetic "orchestrator" result when parsing fails before any analyzer runs.
func TestOrchestrator_MissingFileYieldsSyntheticFailure(t *testing.T) {
	reg := analyzer.NewRegistry()
	o := New(reg, settings.New(), logging.NewNoop())

	result := o.RunAnalysis(context.Background(), Request{
		InputPath:    filepath.Join(t.TempDir(), "missing.log"),
		AnalysisKind: types.KindCrashLog,
	})

	if len(result.Results) != 1 || result.Results[0].AnalyzerName != "orchestrator" {
		t.Fatalf("expected single synthetic orchestrator result, got %+v", result.Results)
	}
	if result.Results[0].Status != types.StatusFailed {
		t.Errorf("status = %v, want failed-with-error", result.Results[0].Status)
	}
}

// TestOrchestrator_DeterministicOrder covers §4.4/§5: results sorted by
// (priority desc, name asc).
func TestOrchestrator_DeterministicOrder(t *testing.T) {
	reg := analyzer.NewRegistry()
	reg.MustRegister(priorityAnalyzer{name: "Zebra", priority: 1})
	reg.MustRegister(priorityAnalyzer{name: "Alpha", priority: 1})
	reg.MustRegister(priorityAnalyzer{name: "Omega", priority: 9})

	o := New(reg, settings.New(), logging.NewNoop())
	result := o.RunAnalysis(context.Background(), Request{
		InputPath:    writeCrashLog(t),
		AnalysisKind: types.KindCrashLog,
	})

	if len(result.Results) != 3 {
		t.Fatalf("len = %d", len(result.Results))
	}
	got := []string{result.Results[0].AnalyzerName, result.Results[1].AnalyzerName, result.Results[2].AnalyzerName}
	want := []string{"Omega", "Alpha", "Zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

type priorityAnalyzer struct {
	name     string
	priority int
}

func (p priorityAnalyzer) Name() string  { return p.name }
func (p priorityAnalyzer) Priority() int { return p.priority }
func (p priorityAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}
func (p priorityAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	return analyzer.Skipped(p.name, "noop")
}

type sharedWriterAnalyzer struct{ name string }

func (s sharedWriterAnalyzer) Name() string  { return s.name }
func (s sharedWriterAnalyzer) Priority() int { return 10 }
func (s sharedWriterAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}
func (s sharedWriterAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	ctx.Shared.Set(s.name, "vendor", "NVIDIA")
	return analyzer.Skipped(s.name, "noop")
}

type sharedReaderAnalyzer struct{ name string }

func (s sharedReaderAnalyzer) Name() string  { return s.name }
func (s sharedReaderAnalyzer) Priority() int { return 1 }
func (s sharedReaderAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}
func (s sharedReaderAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	result := analyzer.Skipped(s.name, "noop")
	if v, ok := ctx.Shared.Get("vendor"); ok {
		result.Metadata["vendor"] = v.(string)
	}
	return result
}

// TestOrchestrator_SharedDataCrossesAnalyzers covers §3's cross-analyzer
// shared_data contract: every analyzer in a run must borrow the same
// AnalysisContext (and therefore the same SharedData), not one built fresh
// per analyzer. MaxParallel is pinned to 1 so the higher-priority writer
// is guaranteed to run before the reader.
func TestOrchestrator_SharedDataCrossesAnalyzers(t *testing.T) {
	reg := analyzer.NewRegistry()
	reg.MustRegister(sharedWriterAnalyzer{name: "Writer"})
	reg.MustRegister(sharedReaderAnalyzer{name: "Reader"})

	o := New(reg, settings.New(), logging.NewNoop())
	result := o.RunAnalysis(context.Background(), Request{
		InputPath:    writeCrashLog(t),
		AnalysisKind: types.KindCrashLog,
		MaxParallel:  1,
	})

	var reader *analyzer.Result
	for _, r := range result.Results {
		if r.AnalyzerName == "Reader" {
			reader = r
		}
	}
	if reader == nil {
		t.Fatal("missing Reader result")
	}
	if reader.Metadata["vendor"] != "NVIDIA" {
		t.Fatalf("Reader did not observe Writer's shared_data write, got metadata %+v", reader.Metadata)
	}
}

// TestOrchestrator_CancellationSkipsAnalyzers covers §5's cancellation
// polling between scheduling and before each analyzer starts.
func TestOrchestrator_CancellationSkipsAnalyzers(t *testing.T) {
	reg := analyzer.NewRegistry()
	reg.MustRegister(okAnalyzer{name: "Fine"})

	o := New(reg, settings.New(), logging.NewNoop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := o.RunAnalysis(ctx, Request{
		InputPath:    writeCrashLog(t),
		AnalysisKind: types.KindCrashLog,
	})

	if !result.WasCancelled {
		t.Error("expected WasCancelled = true")
	}
	if result.Results[0].Status != types.StatusSkipped {
		t.Errorf("status = %v, want skipped", result.Results[0].Status)
	}
}
