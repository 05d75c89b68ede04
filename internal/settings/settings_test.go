package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet_MissingKeyReturnsDefault(t *testing.T) {
	v := New()
	got := Get(v, ScopeMain, "does.not.exist", "fallback")
	if got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestLoadScope_MissingFileIsNotError(t *testing.T) {
	v := New()
	if err := v.LoadScope(ScopeMain, filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
}

func TestGetLayered_HigherScopeWins(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.yaml")
	gamePath := filepath.Join(dir, "game.yaml")

	if err := os.WriteFile(mainPath, []byte("max_parallel: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gamePath, []byte("max_parallel: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := v.LoadScope(ScopeMain, mainPath); err != nil {
		t.Fatalf("load main: %v", err)
	}
	if err := v.LoadScope(ScopeGame, gamePath); err != nil {
		t.Fatalf("load game: %v", err)
	}

	got := GetLayered(v, "", "max_parallel", 0)
	if got != 8 {
		t.Fatalf("max_parallel = %d, want 8 (Game overrides Main)", got)
	}
}
