package report

import "github.com/scanner111/scanner111/internal/types"

// Format selects which renderer ComposeFromFragments / GenerateReport uses.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Options controls rendering independent of the tree itself: the minimum
// severity to include and whether a table of contents / numbering is
// requested (§4.6).
type Options struct {
	MinSeverity     types.Severity
	TableOfContents bool
	NumberSections  bool
}

// DefaultOptions renders everything, unnumbered, without a ToC.
func DefaultOptions() Options {
	return Options{MinSeverity: types.SeverityNone}
}

// Render dispatches to the formatter for format, returning an error for an
// unknown format (the template fallback logic lives in templates.go).
func Render(f *Fragment, format Format, opts Options) (string, error) {
	switch format {
	case FormatMarkdown:
		return RenderMarkdown(f, opts), nil
	case FormatHTML:
		return RenderHTML(f, opts), nil
	case FormatJSON:
		return RenderJSON(f, opts)
	case FormatText:
		return RenderText(f, opts), nil
	default:
		return "", errUnknownFormat(format)
	}
}

type errUnknownFormat Format

func (e errUnknownFormat) Error() string {
	return "report: unknown format " + string(e)
}
