package report

import "encoding/json"

// jsonFragment mirrors Fragment with stable key order via struct tag
// ordering (encoding/json preserves declared field order).
type jsonFragment struct {
	Kind     string          `json:"kind"`
	Title    string          `json:"title,omitempty"`
	Order    int             `json:"order"`
	Content  string          `json:"content,omitempty"`
	Severity string          `json:"severity"`
	Children []*jsonFragment `json:"children,omitempty"`
}

// RenderJSON renders a fragment tree as the recursive object described in
// §4.6: { kind, title, order, content, severity, children: [...] }.
func RenderJSON(f *Fragment, opts Options) (string, error) {
	converted := toJSONFragment(f, &opts)
	if converted == nil {
		converted = &jsonFragment{Kind: string(KindEmpty), Severity: string(KindEmptySeverity())}
	}
	data, err := json.MarshalIndent(converted, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// KindEmptySeverity exists only to give the top-level empty case a severity
// string without exporting kindSeverity directly.
func KindEmptySeverity() string {
	return string(kindSeverity[KindEmpty])
}

func toJSONFragment(f *Fragment, opts *Options) *jsonFragment {
	if IsEmpty(f) {
		return nil
	}
	if f.Severity().Below(opts.MinSeverity) {
		return nil
	}

	jf := &jsonFragment{
		Kind:     string(f.Kind),
		Title:    f.Title,
		Order:    f.Order,
		Content:  f.Content,
		Severity: string(f.Severity()),
	}
	for _, child := range f.SortedChildren() {
		if c := toJSONFragment(child, opts); c != nil {
			jf.Children = append(jf.Children, c)
		}
	}
	return jf
}
