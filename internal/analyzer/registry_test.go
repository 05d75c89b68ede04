package analyzer

import (
	"testing"

	"github.com/scanner111/scanner111/internal/types"
)

type stubAnalyzer struct {
	name     string
	priority int
	kinds    []types.AnalysisKind
}

func (s stubAnalyzer) Name() string                        { return s.name }
func (s stubAnalyzer) Priority() int                        { return s.priority }
func (s stubAnalyzer) SupportedKinds() []types.AnalysisKind { return s.kinds }
func (s stubAnalyzer) Analyze(ctx *AnalysisContext) *Result { return Skipped(s.name, "stub") }

func TestRegistry_RejectsDuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubAnalyzer{name: "Plugin"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(stubAnalyzer{name: "plugin"}); err == nil {
		t.Fatal("expected duplicate registration (case-insensitive) to fail")
	}
}

func TestRegistry_AllOrdersByPriorityThenName(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(stubAnalyzer{name: "Zebra", priority: 5})
	r.MustRegister(stubAnalyzer{name: "Alpha", priority: 5})
	r.MustRegister(stubAnalyzer{name: "Omega", priority: 10})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].Name() != "Omega" || all[1].Name() != "Alpha" || all[2].Name() != "Zebra" {
		t.Fatalf("unexpected order: %v, %v, %v", all[0].Name(), all[1].Name(), all[2].Name())
	}
}

func TestRegistry_FilterIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(stubAnalyzer{name: "Plugin"})
	r.MustRegister(stubAnalyzer{name: "FormId"})

	filtered := r.Filter([]string{"plugin"})
	if len(filtered) != 1 || filtered[0].Name() != "Plugin" {
		t.Fatalf("filter by lowercase name failed: %+v", filtered)
	}
}

func TestRegistry_ByNameMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.ByName("nope"); ok {
		t.Fatal("expected lookup miss for unregistered name")
	}
}
