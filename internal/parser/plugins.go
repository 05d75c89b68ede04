package parser

import (
	"regexp"
	"sort"
	"strings"
)

// pluginLineRe matches `[<idx>] <name>` lines in a crash log's plugin table.
// idx is captured raw; normalizeIndex and validateIndex apply the grammar
// from spec §3/§4.1 afterwards.
var pluginLineRe = regexp.MustCompile(`^\[([^\]]+)\]\s+(\S.*)$`)

// hexByteRe matches any 2-hex load-order index ("00".."FF"); IsFullPlugin
// additionally excludes the "FE" light-plugin slot.
var hexByteRe = regexp.MustCompile(`^[0-9A-Fa-f]{2}$`)

// lightSlotRe matches a light-plugin (ESL) slot token "FE:xxx".
var lightSlotRe = regexp.MustCompile(`^FE:[0-9A-Fa-f]{3}$`)

// PluginTable is the normalized plugin → load-order-token mapping from §3.
// Names are case-preserving on insert but looked up case-insensitively.
type PluginTable struct {
	entries map[string]string // canonical (as-seen) name -> token
	index   map[string]string // lowercased name -> canonical name
}

// NewPluginTable creates an empty table.
func NewPluginTable() *PluginTable {
	return &PluginTable{entries: make(map[string]string), index: make(map[string]string)}
}

// Set records name -> token, overwriting any prior token for the same
// case-insensitive name (§4.1 "Duplicates overwrite").
func (t *PluginTable) Set(name, token string) {
	lower := strings.ToLower(name)
	if canonical, ok := t.index[lower]; ok {
		delete(t.entries, canonical)
	}
	t.index[lower] = name
	t.entries[name] = token
}

// Get looks up a plugin's token case-insensitively.
func (t *PluginTable) Get(name string) (string, bool) {
	canonical, ok := t.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	token, ok := t.entries[canonical]
	return token, ok
}

// Len returns the number of distinct plugins recorded.
func (t *PluginTable) Len() int {
	return len(t.entries)
}

// Names returns the plugin names in stable (lexical) order.
func (t *PluginTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Range calls fn for every plugin in stable (lexical) order.
func (t *PluginTable) Range(fn func(name, token string)) {
	for _, name := range t.Names() {
		fn(name, t.entries[name])
	}
}

// IsFullPlugin reports whether token addresses a regular (non-ESL) slot.
func IsFullPlugin(token string) bool {
	return hexByteRe.MatchString(token) && !strings.EqualFold(token, "FE")
}

// IsLightPlugin reports whether token addresses an ESL light slot.
func IsLightPlugin(token string) bool {
	return lightSlotRe.MatchString(token)
}

// normalizeIndex applies the space->'0' normalisation contract from §3:
// "When a space appears inside a bracket pair (e.g. [ 1], [FE:  0]), space
// is replaced by '0'". It also uppercases hex letters for a stable token.
// A light-slot sub-index (after the colon) is then left-padded with '0' to
// the grammar's fixed 3-hex width, and a plain byte index to 2-hex width —
// §8-S1's worked example requires "[FE: 1]" (one space) to normalise to
// "FE:001", which a bare character-for-character replace can't produce
// since the raw sub-index is narrower than the field it fills.
func normalizeIndex(raw string) string {
	replaced := strings.ToUpper(strings.ReplaceAll(raw, " ", "0"))
	if colon := strings.IndexByte(replaced, ':'); colon >= 0 {
		prefix, suffix := replaced[:colon], replaced[colon+1:]
		if len(suffix) < 3 {
			suffix = strings.Repeat("0", 3-len(suffix)) + suffix
		}
		return prefix + ":" + suffix
	}
	if len(replaced) < 2 {
		replaced = strings.Repeat("0", 2-len(replaced)) + replaced
	}
	return replaced
}

// validateIndex reports whether idx (already normalized) matches the
// plugin-token grammar: a 2-hex byte or a light-slot "FE:xxx". The literal
// placeholder "XX" (no digits substituted by the crash generator) and any
// index that still fails the grammar are rejected per §4.1.
func validateIndex(idx string) bool {
	if idx == "" || strings.EqualFold(idx, "XX") {
		return false
	}
	return hexByteRe.MatchString(idx) || lightSlotRe.MatchString(idx)
}

// parsePluginLine parses one line of a PLUGINS: segment. It returns
// ok=false for anything that doesn't match the accepted grammar — unclosed
// brackets, an empty index, the literal placeholder "[XX]", or an index
// that doesn't reduce to a valid hex-byte or light-slot token.
func parsePluginLine(line string) (name, token string, ok bool) {
	m := pluginLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	idx := normalizeIndex(m[1])
	if !validateIndex(idx) {
		return "", "", false
	}
	return m[2], idx, true
}
