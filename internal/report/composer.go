package report

import (
	"fmt"
	"strings"
)

// Composer implements the ReportComposer contract (§6):
// compose_from_fragments(fragments, options) -> string.
type Composer struct{}

// NewComposer creates a Composer. It carries no state; formatting is a
// pure function of the fragment tree and Options.
func NewComposer() *Composer {
	return &Composer{}
}

// ComposeFromFragments merges fragments via Compose and renders the result
// in the requested format.
func (c *Composer) ComposeFromFragments(fragments []*Fragment, format Format, opts Options) (string, error) {
	root := Compose(fragments...)
	return Render(root, format, opts)
}

// Stats summarizes a rendered set of results, matching the shape the CLI
// prints as its single-line summary (§7 "The CLI prints a single-line
// summary").
type Stats struct {
	Total     int
	ByKind    map[Kind]int
	MaxSeverity string
}

// Generator implements the AdvancedReportGenerator contract (§6):
// generate_report, generate_statistics, register_template.
type Generator struct {
	templates *TemplateRegistry
}

// NewGenerator creates a Generator backed by the built-in templates.
func NewGenerator() *Generator {
	return &Generator{templates: NewTemplateRegistry()}
}

// RegisterTemplate adds a user-defined template.
func (g *Generator) RegisterTemplate(t Template) {
	g.templates.Register(t)
}

// GenerateReport renders fragments using the named template (falling back
// to "technical" for an unknown name), optionally prefixing a table of
// contents.
func (g *Generator) GenerateReport(fragments []*Fragment, templateName string, format Format) (string, error) {
	tmpl := g.templates.Get(templateName)
	root := Compose(fragments...)
	if len(tmpl.Sections) > 0 {
		root = filterSections(root, tmpl.Sections)
	}

	opts := tmpl.OptionsFor()
	body, err := Render(root, format, opts)
	if err != nil {
		return "", err
	}
	if !tmpl.TableOfContents || format != FormatMarkdown {
		return body, nil
	}
	return tableOfContents(root, opts) + "\n" + body, nil
}

// GenerateStatistics tallies fragment kinds across a rendered tree, for
// callers that want counts without re-walking the tree themselves.
func (g *Generator) GenerateStatistics(fragments []*Fragment) Stats {
	root := Compose(fragments...)
	stats := Stats{ByKind: make(map[Kind]int), MaxSeverity: string(root.Severity())}
	var walk func(f *Fragment)
	walk = func(f *Fragment) {
		if IsEmpty(f) {
			return
		}
		stats.Total++
		stats.ByKind[f.Kind]++
		for _, c := range f.Children {
			walk(c)
		}
	}
	walk(root)
	return stats
}

func filterSections(root *Fragment, allow []string) *Fragment {
	allowed := make(map[string]bool, len(allow))
	for _, a := range allow {
		allowed[a] = true
	}
	var kept []*Fragment
	for _, c := range root.Children {
		if c.Title == "" || allowed[c.Title] {
			kept = append(kept, c)
		}
	}
	return Section(root.Title, root.Order, kept...)
}

func tableOfContents(root *Fragment, opts Options) string {
	var sb strings.Builder
	sb.WriteString("## Table of Contents\n\n")
	for _, c := range root.SortedChildren() {
		if c.Title == "" || c.Severity().Below(opts.MinSeverity) {
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", c.Title)
	}
	return sb.String()
}
