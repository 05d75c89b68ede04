package report

import "github.com/scanner111/scanner111/internal/types"

// Template is a predefined or user-registered view over a set of result
// fragments (§4.6): which sections to include, the minimum severity to
// show, whether to emit a table of contents, whether to group by
// severity, and who it's meant for.
type Template struct {
	Name            string
	MinSeverity     types.Severity
	TableOfContents bool
	GroupBySeverity bool
	Audience        string
	// Sections, when non-empty, restricts rendering to fragments whose
	// Title matches one of these (case-sensitive, matched at the
	// top-level section boundary only).
	Sections []string
}

var builtinTemplates = map[string]Template{
	"executive": {
		Name:        "executive",
		MinSeverity: types.SeverityWarning,
		Audience:    "executive",
	},
	"technical": {
		Name:            "technical",
		MinSeverity:     types.SeverityNone,
		TableOfContents: true,
		Audience:        "technical",
	},
	"summary": {
		Name:        "summary",
		MinSeverity: types.SeverityInfo,
		Audience:    "summary",
	},
	"full": {
		Name:            "full",
		MinSeverity:     types.SeverityNone,
		TableOfContents: true,
		GroupBySeverity: true,
		Audience:        "full",
	},
}

// TemplateRegistry holds the built-in templates plus any user-registered
// ones. The zero value is ready to use (backed by the built-ins).
type TemplateRegistry struct {
	custom map[string]Template
}

// NewTemplateRegistry creates a registry seeded with the built-in templates.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{custom: make(map[string]Template)}
}

// Register adds or replaces a user-defined template.
func (r *TemplateRegistry) Register(t Template) {
	if r.custom == nil {
		r.custom = make(map[string]Template)
	}
	r.custom[t.Name] = t
}

// Get resolves a template by name, falling back to "technical" for any
// unknown name (§4.6 "Unknown template -> fall back to technical").
func (r *TemplateRegistry) Get(name string) Template {
	if t, ok := r.custom[name]; ok {
		return t
	}
	if t, ok := builtinTemplates[name]; ok {
		return t
	}
	return builtinTemplates["technical"]
}

// OptionsFor derives render Options from a template.
func (t Template) OptionsFor() Options {
	return Options{
		MinSeverity:     t.MinSeverity,
		TableOfContents: t.TableOfContents,
	}
}
