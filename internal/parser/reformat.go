package parser

import "strings"

// Reformat rewrites a crash log's plugin-table lines in place, applying the
// space->'0' normalisation contract (§3, §8-S1) and dropping any line that
// contains one of the configured removal substrings. Per the Design Note
// open question in §9, this module resolves the "Steam.dll removed by
// content match vs. line prefix" ambiguity in favor of line-contains
// matching: a line is dropped if it contains any removal string anywhere,
// not just as a prefix.
//
// Reformat never touches the original file; callers decide whether to
// write the result back (it is opt-in per §1's non-goals).
func Reformat(lines []string, removeContaining []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if containsAny(line, removeContaining) {
			continue
		}
		if name, _, ok := parsePluginLine(line); ok {
			m := pluginLineRe.FindStringSubmatch(line)
			idx := normalizeIndex(m[1])
			out = append(out, "["+idx+"] "+name)
			continue
		}
		out = append(out, line)
	}
	return out
}

func containsAny(line string, substrings []string) bool {
	for _, s := range substrings {
		if s == "" {
			continue
		}
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
