// Package parser turns the byte sequence of a Bethesda-game crash log into
// a normalized ParsedCrashLog (spec §3, §4.1). It never mutates its input
// and never performs partial writes; a successfully parsed log is
// immutable from here on, matching the ownership rule in §3/§5.
package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/scanner111/scanner111/internal/types"
)

// UnknownValue is substituted for any scalar the parser could not locate.
const UnknownValue = "UNKNOWN"

// HeaderCallStack and the other known segment headers from §4.1 step 4.
// headerXSETemplate is a template; the XSE acronym is substituted by
// resolveXSEHeader before matching.
const (
	HeaderSystemSpecs  = "SYSTEM SPECS:"
	HeaderCallStack    = "PROBABLE CALL STACK:"
	HeaderRegisters    = "REGISTERS:"
	HeaderStack        = "STACK:"
	HeaderModules      = "MODULES:"
	HeaderPlugins      = "PLUGINS:"
	headerXSETemplate  = "%s PLUGINS:"
)

// ParsedCrashLog is the normalized form of one crash log (§3).
type ParsedCrashLog struct {
	Path            string
	RawLines        []string // 1-based indexing: RawLines[0] is line 1.
	GameVersion     string
	CrashGenName    string
	CrashGenVersion string
	MainError       string
	CallStack       []string
	Plugins         *PluginTable
	OtherSegments   map[string][]string
}

// Line returns the 1-indexed raw line n, or "" if out of range.
func (p *ParsedCrashLog) Line(n int) string {
	if n < 1 || n > len(p.RawLines) {
		return ""
	}
	return p.RawLines[n-1]
}

// gameVersionRe matches a leading "<Name...> v<digits.dots>" scalar line,
// used for both the game version and the crash generator name+version
// (§4.1 step 2).
var gameVersionRe = regexp.MustCompile(`^(.+?)\s+v([0-9]+(?:\.[0-9]+)*)\s*$`)

// Parse reads the file at path and produces a ParsedCrashLog. A missing
// file surfaces types.ErrNotFound; any other read failure surfaces
// types.ErrIO. Decoding errors are recovered silently by treating the
// bytes as UTF-8 with replacement characters, never as a hard failure.
func Parse(path string, xseAcronym string) (*ParsedCrashLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, types.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w: %v", path, types.ErrIO, err)
	}
	return ParseBytes(path, data, xseAcronym)
}

// ParseBytes parses crash-log content already in memory; Parse is a thin
// wrapper around this for the common file-backed case. An empty input
// yields a ParsedCrashLog with empty collections and "UNKNOWN" scalars,
// never an error.
func ParseBytes(path string, data []byte, xseAcronym string) (*ParsedCrashLog, error) {
	text := toValidUTF8(data)
	lines := splitLines(text)

	log := &ParsedCrashLog{
		Path:          path,
		RawLines:      lines,
		GameVersion:   UnknownValue,
		CrashGenName:  UnknownValue,
		CrashGenVersion: UnknownValue,
		MainError:     UnknownValue,
		CallStack:     nil,
		Plugins:       NewPluginTable(),
		OtherSegments: make(map[string][]string),
	}

	extractScalars(log, lines)
	extractMainError(log, lines)
	splitSegments(log, lines, xseAcronym)

	return log, nil
}

// toValidUTF8 replaces invalid byte sequences with the Unicode replacement
// character instead of failing the parse (§4.1 "falls back to UTF-8 with
// replacement characters").
func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), string(rune(0xFEFF)))
	}
	var sb strings.Builder
	sb.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		sb.WriteRune(r)
		data = data[size:]
	}
	return strings.TrimPrefix(sb.String(), string(rune(0xFEFF)))
}

// splitLines splits on platform newlines, preserving empty lines, and
// trims a single trailing CR from each line (CRLF tolerance) plus
// trailing whitespace per §4.1 step 6.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		lines[i] = strings.TrimRight(l, " \t\f\v")
	}
	// A trailing newline produces one spurious empty final line; drop it
	// to keep "number of raw lines" meaningful for round-tripping, but
	// only when the file actually ended with a newline and had content.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// extractScalars reads the first ~10 lines looking for the game version
// and crash-generator name+version (§4.1 step 2).
func extractScalars(log *ParsedCrashLog, lines []string) {
	limit := 10
	if limit > len(lines) {
		limit = len(lines)
	}

	foundGame := false
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		m := gameVersionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if !foundGame {
			log.GameVersion = line
			foundGame = true
			continue
		}
		log.CrashGenName = m[1]
		log.CrashGenVersion = "v" + m[2]
		break
	}
}

// unhandledExceptionRe matches the start of the main-error paragraph.
var unhandledExceptionRe = regexp.MustCompile(`(?i)^unhandled exception`)

// extractMainError finds the first paragraph beginning with "Unhandled
// exception" and joins its continuation lines, splitting any '|' markers
// within a source line into separate lines (§4.1 step 3).
func extractMainError(log *ParsedCrashLog, lines []string) {
	start := -1
	for i, line := range lines {
		if unhandledExceptionRe.MatchString(strings.TrimSpace(line)) {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	var paragraph []string
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if i > start && strings.TrimSpace(line) == "" {
			break
		}
		if i > start && isKnownHeader(line) {
			break
		}
		parts := strings.Split(line, "|")
		for _, part := range parts {
			paragraph = append(paragraph, strings.TrimSpace(part))
		}
	}
	log.MainError = strings.Join(paragraph, "\n")
}

// resolveXSEHeader renders the "<XSE> PLUGINS:" header for the configured
// script-extender acronym (F4SE, SKSE, ...).
func resolveXSEHeader(xseAcronym string) string {
	if xseAcronym == "" {
		xseAcronym = "F4SE"
	}
	return fmt.Sprintf(headerXSETemplate, strings.ToUpper(xseAcronym))
}

func isKnownHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case HeaderSystemSpecs, HeaderCallStack, HeaderRegisters, HeaderStack, HeaderModules, HeaderPlugins:
		return true
	}
	return strings.HasSuffix(trimmed, " PLUGINS:") && strings.HasSuffix(trimmed, "PLUGINS:")
}

// splitSegments performs the bulk of §4.1 step 4/5: scanning for known
// headers, routing call-stack lines to CallStack, plugin-table lines
// through parsePluginLine into Plugins, and everything else into
// OtherSegments keyed by its header.
func splitSegments(log *ParsedCrashLog, lines []string, xseAcronym string) {
	xseHeader := resolveXSEHeader(xseAcronym)

	var current string
	var buf []string
	flush := func() {
		if current == "" {
			return
		}
		switch current {
		case HeaderCallStack:
			log.CallStack = append([]string(nil), buf...)
		case HeaderPlugins, xseHeader:
			for _, line := range buf {
				name, token, ok := parsePluginLine(strings.TrimSpace(line))
				if !ok {
					continue
				}
				log.Plugins.Set(name, token)
			}
		default:
			log.OtherSegments[current] = append([]string(nil), buf...)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeaderLine(trimmed, xseHeader) {
			flush()
			current = trimmed
			buf = buf[:0]
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()
}

func isHeaderLine(trimmed, xseHeader string) bool {
	switch trimmed {
	case HeaderSystemSpecs, HeaderCallStack, HeaderRegisters, HeaderStack, HeaderModules, HeaderPlugins, xseHeader:
		return true
	}
	return false
}
