package report

import (
	"fmt"
	"strings"
)

var textTags = map[Kind]string{
	KindInfo:     "[INFO]",
	KindWarning:  "[WARN]",
	KindError:    "[ERR]",
	KindCritical: "[!!]",
	KindSuccess:  "[OK]",
	KindFix:      "[FIX]",
	KindNotice:   "[NOTE]",
}

// RenderText flattens the tree to ASCII tags with two-space-per-depth
// indentation (§4.6).
func RenderText(f *Fragment, opts Options) string {
	var sb strings.Builder
	renderTextNode(&sb, f, 0, &opts)
	return strings.TrimRight(sb.String(), "\n")
}

func renderTextNode(sb *strings.Builder, f *Fragment, depth int, opts *Options) {
	if IsEmpty(f) {
		return
	}
	if f.Severity().Below(opts.MinSeverity) {
		return
	}

	indent := strings.Repeat("  ", depth)
	switch f.Kind {
	case KindSeparator:
		fmt.Fprintf(sb, "%s----\n", indent)
	case KindHeader, KindSection:
		if f.Title != "" {
			fmt.Fprintf(sb, "%s%s\n", indent, f.Title)
		}
	default:
		tag := textTags[f.Kind]
		if f.Title != "" {
			fmt.Fprintf(sb, "%s%s %s\n", indent, tag, f.Title)
		}
		if f.Content != "" {
			for _, line := range strings.Split(f.Content, "\n") {
				fmt.Fprintf(sb, "%s%s %s\n", indent, tag, line)
			}
		}
	}

	for _, child := range f.SortedChildren() {
		renderTextNode(sb, child, depth+1, opts)
	}
}
