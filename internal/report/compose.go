package report

// Compose returns a single fragment whose children are the non-empty
// inputs; nulls/empties are dropped (§4.6). It preserves the identity laws
// from §8 property 4:
//
//	compose(f, Empty()) and compose(Empty(), f) render the same as f
//	compose(a, compose(b, c)) == compose(compose(a, b), c)
//
// A composed section synthesized by a prior Compose call is flattened
// rather than nested, which is what makes the associativity law hold
// structurally instead of merely "render-equivalently".
func Compose(fragments ...*Fragment) *Fragment {
	var flat []*Fragment
	for _, f := range fragments {
		if IsEmpty(f) {
			continue
		}
		if f.Kind == KindSection && f.composed {
			flat = append(flat, f.Children...)
			continue
		}
		flat = append(flat, f)
	}

	switch len(flat) {
	case 0:
		return Empty()
	case 1:
		return flat[0]
	default:
		f := &Fragment{Kind: KindSection, Children: flat, composed: true}
		return stamp(f)
	}
}

// ConditionalSection is a deferred builder: its header is materialised
// only if the produced body has content (§3 "conditional section").
type ConditionalSection struct {
	Title string
	Order int
	Body  func() *Fragment
}

// Build runs the body thunk and collapses to Empty() if it produced no
// content; otherwise wraps it under the configured title.
func (c ConditionalSection) Build() *Fragment {
	body := c.Body()
	if !body.HasContent() {
		return Empty()
	}
	return Section(c.Title, c.Order, body)
}
