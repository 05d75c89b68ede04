package report

import (
	"fmt"
	"strings"
)

var markdownIcons = map[Kind]string{
	KindInfo:     "ℹ",
	KindWarning:  "⚠",
	KindError:    "✗",
	KindCritical: "‼",
	KindSuccess:  "✓",
	KindFix:      "🔧",
	KindNotice:   "📝",
}

var markdownTags = map[Kind]string{
	KindInfo:     "INFO",
	KindWarning:  "WARN",
	KindError:    "ERROR",
	KindCritical: "CRITICAL",
	KindSuccess:  "OK",
	KindFix:      "FIX",
	KindNotice:   "NOTE",
}

// RenderMarkdown renders a fragment tree to Markdown (§4.6).
func RenderMarkdown(f *Fragment, opts Options) string {
	var sb strings.Builder
	renderMarkdownNode(&sb, f, 1, &opts)
	return strings.TrimRight(sb.String(), "\n")
}

func renderMarkdownNode(sb *strings.Builder, f *Fragment, depth int, opts *Options) {
	if IsEmpty(f) {
		return
	}
	if f.Severity().Below(opts.MinSeverity) {
		return
	}

	switch f.Kind {
	case KindHeader:
		fmt.Fprintf(sb, "# %s\n\n", f.Title)
	case KindSection:
		if f.Title != "" {
			fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", depth+1), f.Title)
		}
	case KindSeparator:
		sb.WriteString("---\n\n")
	default:
		icon := markdownIcons[f.Kind]
		tag := markdownTags[f.Kind]
		if f.Title != "" {
			fmt.Fprintf(sb, "%s **[%s] %s**\n\n", icon, tag, f.Title)
		}
		if f.Content != "" {
			fmt.Fprintf(sb, "%s %s\n\n", icon, f.Content)
		}
	}

	for _, child := range f.SortedChildren() {
		renderMarkdownNode(sb, child, depth+1, opts)
	}
}
