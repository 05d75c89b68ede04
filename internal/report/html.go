package report

import (
	"fmt"
	"html"
	"strings"
)

const htmlStyleBlock = `<style>
.kind-header{font-size:1.4em;font-weight:bold}
.kind-section{font-weight:bold;margin-top:1em}
.kind-info{color:#2b7de9}
.kind-warning{color:#b58900}
.kind-error{color:#dc322f}
.kind-critical{color:#ffffff;background:#dc322f}
.kind-success{color:#2aa198}
.kind-notice{color:#6c71c4}
.kind-fix{color:#859900}
.kind-separator{border-top:1px solid #ccc}
</style>
`

// RenderHTML renders a fragment tree as nested <section> elements, content
// HTML-escaped, with a single <style> block mapping kind -> colour (§4.6).
func RenderHTML(f *Fragment, opts Options) string {
	var sb strings.Builder
	sb.WriteString(htmlStyleBlock)
	renderHTMLNode(&sb, f, &opts)
	return sb.String()
}

func renderHTMLNode(sb *strings.Builder, f *Fragment, opts *Options) {
	if IsEmpty(f) {
		return
	}
	if f.Severity().Below(opts.MinSeverity) {
		return
	}

	fmt.Fprintf(sb, `<section class="kind-%s">`, f.Kind)
	if f.Title != "" {
		fmt.Fprintf(sb, "<h3>%s</h3>", html.EscapeString(f.Title))
	}
	if f.Content != "" {
		fmt.Fprintf(sb, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(f.Content), "\n", "<br/>"))
	}
	for _, child := range f.SortedChildren() {
		renderHTMLNode(sb, child, opts)
	}
	sb.WriteString("</section>")
}
