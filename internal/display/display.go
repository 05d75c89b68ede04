// Package display provides the CLI's terminal output: boxed banners,
// single-line status updates, and the post-run summary line (§7 "The CLI
// prints a single-line summary and per-analyzer findings; critical/error
// findings are surfaced in colour"). Adapted from the teacher's banner/
// status/theme idiom (boxed headers, timestamped status lines, a
// NoColorTheme fallback keyed off the terminal width), generalized from
// orchestration-tool chatter to crash-log analysis findings.
package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/scanner111/scanner111/internal/types"
)

// Display handles all CLI output.
type Display struct {
	theme     *Theme
	termWidth int
	noColor   bool
}

// New creates a Display with colour enabled.
func New() *Display {
	return NewWithOptions(false)
}

// NewWithOptions creates a Display honouring --no-color.
func NewWithOptions(noColor bool) *Display {
	d := &Display{
		termWidth: getTerminalWidth(),
		noColor:   noColor,
	}
	if noColor {
		d.theme = NoColorTheme()
	} else {
		d.theme = DefaultTheme()
	}
	return d
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	if width > 120 {
		return 120
	}
	return width
}

// Theme exposes the active theme for callers composing their own output.
func (d *Display) Theme() *Theme {
	return d.theme
}

// Banner prints a boxed message with a title, e.g. the "about" command's
// version banner.
func (d *Display) Banner(title string, lines ...string) {
	if len(lines) == 0 {
		return
	}

	width := d.termWidth - 2
	titleLen := len(title) + 4
	remainingWidth := width - titleLen
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	top := BoxTopLeft + BoxHorizontal + " " + title + " " + strings.Repeat(BoxHorizontal, remainingWidth) + BoxTopRight
	fmt.Println(d.theme.Banner(top))

	for _, line := range lines {
		padded := d.padRight(line, width-2)
		fmt.Println(d.theme.Banner(BoxVertical) + " " + d.theme.Text(padded) + " " + d.theme.Banner(BoxVertical))
	}

	bottom := BoxBottomLeft + strings.Repeat(BoxHorizontal, width) + BoxBottomRight
	fmt.Println(d.theme.Banner(bottom))
}

// Status prints a single timestamped status line.
func (d *Display) Status(symbol, message string) {
	timestamp := time.Now().Format("[15:04:05]")
	fmt.Printf("%s %s %s\n", d.theme.Dim(timestamp), symbol, d.theme.Text(message))
}

func (d *Display) Success(message string) { d.Status(d.theme.Success(SymbolSuccess), message) }
func (d *Display) Error(message string)   { d.Status(d.theme.Error(SymbolError), message) }
func (d *Display) Warning(message string) { d.Status(d.theme.Warning(SymbolWarning), message) }
func (d *Display) Info(message string)    { d.Status(d.theme.Info(SymbolInfo), message) }

// SeveritySymbol returns the themed symbol for a severity (§4.6 icon table).
func (d *Display) SeveritySymbol(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical:
		return d.theme.Critical(SymbolCritical)
	case types.SeverityError:
		return d.theme.Error(SymbolError)
	case types.SeverityWarning:
		return d.theme.Warning(SymbolWarning)
	case types.SeverityInfo:
		return d.theme.Info(SymbolInfo)
	default:
		return d.theme.Dim(SymbolPending)
	}
}

// Finding prints one analyzer's single-line outcome: symbol, name,
// duration, and a terse status note.
func (d *Display) Finding(analyzerName string, sev types.Severity, dur time.Duration, note string) {
	fmt.Printf("  %s %-28s %s  %s\n",
		d.SeveritySymbol(sev),
		analyzerName,
		d.theme.Dim(dur.Round(time.Millisecond).String()),
		d.theme.Text(note))
}

// SectionBreak prints a horizontal rule across the terminal width.
func (d *Display) SectionBreak() {
	fmt.Println(d.theme.Separator(strings.Repeat(SectionBreak, d.termWidth)))
}

// Summary prints the post-run single-line summary (§7).
func (d *Display) Summary(logFile string, total int, maxSeverity types.Severity, dur time.Duration) {
	fmt.Printf("\n%s %s — %d finding(s), max severity %s, %s\n",
		d.SeveritySymbol(maxSeverity),
		d.theme.Bold(logFile),
		total,
		d.theme.Bold(string(maxSeverity)),
		dur.Round(time.Millisecond))
}

func (d *Display) padRight(s string, width int) string {
	if width < 0 {
		return s
	}
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Truncate truncates text to max length with a trailing ellipsis.
func Truncate(s string, max int) string {
	s = CleanText(s)
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// CleanText collapses newlines and repeated spaces into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}
