package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the orchestrator's analyzer directory (§6 AnalyzerRegistry):
// register by name, look up case-insensitively, list all in deterministic
// order. It refuses to register two analyzers under the same name.
type Registry struct {
	byName map[string]Analyzer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Analyzer)}
}

// Register adds an analyzer. It returns an error if an analyzer with the
// same (case-insensitive) name is already registered.
func (r *Registry) Register(a Analyzer) error {
	key := strings.ToLower(a.Name())
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("analyzer: duplicate registration for %q", a.Name())
	}
	r.byName[key] = a
	return nil
}

// MustRegister is Register but panics on error, for use in package-level
// init-style wiring where a duplicate name is a programming error.
func (r *Registry) MustRegister(a Analyzer) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// ByName looks up an analyzer case-insensitively.
func (r *Registry) ByName(name string) (Analyzer, bool) {
	a, ok := r.byName[strings.ToLower(name)]
	return a, ok
}

// All returns every registered analyzer, sorted by Priority descending
// then Name ascending — the same order the orchestrator uses to run and
// report them (§6).
func (r *Registry) All() []Analyzer {
	out := make([]Analyzer, 0, len(r.byName))
	for _, a := range r.byName {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out
}

// Filter returns the subset of All() whose names (case-insensitive) are
// in names. An empty names selects every registered analyzer.
func (r *Registry) Filter(names []string) []Analyzer {
	if len(names) == 0 {
		return r.All()
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}
	var out []Analyzer
	for _, a := range r.All() {
		if want[strings.ToLower(a.Name())] {
			out = append(out, a)
		}
	}
	return out
}
