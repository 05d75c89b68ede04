package report

import "testing"

func TestComposeIdentity(t *testing.T) {
	f := Leaf(KindInfo, "hello", 0, "world")

	if got := renderText(Compose(f, Empty())); got != renderText(f) {
		t.Errorf("compose(f, empty) = %q, want %q", got, renderText(f))
	}
	if got := renderText(Compose(Empty(), f)); got != renderText(f) {
		t.Errorf("compose(empty, f) = %q, want %q", got, renderText(f))
	}
	if got := renderText(Compose(f)); got != renderText(f) {
		t.Errorf("compose(f) = %q, want %q", got, renderText(f))
	}
}

func TestComposeAssociativity(t *testing.T) {
	a := Leaf(KindInfo, "a", 0, "A")
	b := Leaf(KindWarning, "b", 1, "B")
	c := Leaf(KindError, "c", 2, "C")

	left := Compose(a, Compose(b, c))
	right := Compose(Compose(a, b), c)

	if renderText(left) != renderText(right) {
		t.Errorf("associativity violated:\nleft=%q\nright=%q", renderText(left), renderText(right))
	}
}

func TestConditionalSectionCollapsesWhenEmpty(t *testing.T) {
	cs := ConditionalSection{
		Title: "Never shown",
		Body:  func() *Fragment { return Empty() },
	}
	if !IsEmpty(cs.Build()) {
		t.Fatal("expected conditional section with empty body to collapse to empty")
	}

	cs2 := ConditionalSection{
		Title: "Shown",
		Body:  func() *Fragment { return Leaf(KindInfo, "", 0, "has content") },
	}
	built := cs2.Build()
	if IsEmpty(built) || built.Title != "Shown" {
		t.Fatalf("expected materialised section, got %+v", built)
	}
}

func TestSeverityIsMaxOfTree(t *testing.T) {
	root := Section("root", 0,
		Leaf(KindInfo, "", 0, "info"),
		Section("nested", 1, Leaf(KindCritical, "", 0, "boom")),
	)
	if root.Severity() != "critical" {
		t.Errorf("Severity() = %v, want critical", root.Severity())
	}
}

func renderText(f *Fragment) string {
	return RenderText(f, DefaultOptions())
}
