// Package report implements the ReportFragment algebra from spec §3/§4.6:
// a tree of text chunks that compose associatively with an empty identity,
// and the formatters that render that tree to Markdown, HTML, JSON, and
// plain text.
package report

import (
	"sort"
	"sync/atomic"

	"github.com/scanner111/scanner111/internal/types"
)

// Kind is a fragment's rendering role. The spec's §3 kind set is
// {header, section, info, warning, error, success, notice, fix, separator,
// empty}; this adds KindCritical because §4.6's formatter table requires a
// distinct critical icon/tag that none of the listed kinds cover — see
// DESIGN.md for the open-question resolution.
type Kind string

const (
	KindHeader    Kind = "header"
	KindSection   Kind = "section"
	KindInfo      Kind = "info"
	KindWarning   Kind = "warning"
	KindError     Kind = "error"
	KindCritical  Kind = "critical"
	KindSuccess   Kind = "success"
	KindNotice    Kind = "notice"
	KindFix       Kind = "fix"
	KindSeparator Kind = "separator"
	KindEmpty     Kind = "empty"
)

// kindSeverity is the severity a bare fragment of this kind contributes,
// before folding in children (Fragment.Severity).
var kindSeverity = map[Kind]types.Severity{
	KindHeader:    types.SeverityNone,
	KindSection:   types.SeverityNone,
	KindInfo:      types.SeverityInfo,
	KindWarning:   types.SeverityWarning,
	KindError:     types.SeverityError,
	KindCritical:  types.SeverityCritical,
	KindSuccess:   types.SeverityNone,
	KindNotice:    types.SeverityInfo,
	KindFix:       types.SeverityNone,
	KindSeparator: types.SeverityNone,
	KindEmpty:     types.SeverityNone,
}

// Fragment is a node in the report tree (§3).
type Fragment struct {
	Kind     Kind
	Title    string
	Order    int
	Content  string
	Children []*Fragment

	// composed marks a section synthesized by Compose, so a later Compose
	// call can flatten it rather than nesting — this is what makes
	// compose(a, compose(b, c)) structurally equal to compose(compose(a, b), c).
	composed bool
	// seq is the insertion index, used as the stable-sort tiebreaker
	// independent of the slice position (children can be reordered before
	// rendering without losing original insertion order).
	seq int64
}

// nextSeq is incremented atomically: fragments are built concurrently by
// analyzers running on the orchestrator's worker pool (§5), so the
// insertion-sequence stamp must not race.
var nextSeq int64

func stamp(f *Fragment) *Fragment {
	f.seq = atomic.AddInt64(&nextSeq, 1)
	return f
}

// Empty returns the identity fragment: compose(f, Empty()) renders exactly
// as f (§8 property 4).
func Empty() *Fragment {
	return stamp(&Fragment{Kind: KindEmpty})
}

// IsEmpty reports whether f is nil or the identity fragment with no content.
func IsEmpty(f *Fragment) bool {
	return f == nil || (f.Kind == KindEmpty && !f.HasContent())
}

// Leaf constructs a leaf fragment of the given kind carrying inline content.
func Leaf(kind Kind, title string, order int, content string) *Fragment {
	return stamp(&Fragment{Kind: kind, Title: title, Order: order, Content: content})
}

// Section constructs an internal node with children.
func Section(title string, order int, children ...*Fragment) *Fragment {
	f := &Fragment{Kind: KindSection, Title: title, Order: order}
	for _, c := range children {
		if !IsEmpty(c) {
			f.Children = append(f.Children, c)
		}
	}
	return stamp(f)
}

// Header constructs a top-level header fragment.
func Header(title string, order int) *Fragment {
	return stamp(&Fragment{Kind: KindHeader, Title: title, Order: order})
}

// Separator constructs a horizontal-rule fragment.
func Separator(order int) *Fragment {
	return stamp(&Fragment{Kind: KindSeparator, Order: order})
}

// HasContent is true iff Content is non-empty or any child has content (§3).
func (f *Fragment) HasContent() bool {
	if f == nil {
		return false
	}
	if f.Content != "" {
		return true
	}
	for _, c := range f.Children {
		if c.HasContent() {
			return true
		}
	}
	return false
}

// Severity returns max(self.kind severity, max children severity) (§3).
func (f *Fragment) Severity() types.Severity {
	if f == nil {
		return types.SeverityNone
	}
	sev := kindSeverity[f.Kind]
	for _, c := range f.Children {
		sev = types.Max(sev, c.Severity())
	}
	return sev
}

// SortedChildren returns Children sorted by (Order asc, insertion-index asc),
// a stable sort per §4.6 "Ordering within a parent".
func (f *Fragment) SortedChildren() []*Fragment {
	if f == nil {
		return nil
	}
	children := append([]*Fragment(nil), f.Children...)
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Order != children[j].Order {
			return children[i].Order < children[j].Order
		}
		return children[i].seq < children[j].seq
	})
	return children
}

// Append adds a non-empty child in place and returns f for chaining.
func (f *Fragment) Append(child *Fragment) *Fragment {
	if !IsEmpty(child) {
		f.Children = append(f.Children, child)
	}
	return f
}
