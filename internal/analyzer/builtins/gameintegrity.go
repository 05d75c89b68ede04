package builtins

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
)

// KnownFile is one entry in the critical-game-file integrity table
// (§4.2 "against a known map").
type KnownFile struct {
	RelativePath string
	SHA256Hex    string
}

// GameIntegrityAnalyzer verifies that critical game files are present and
// match a known-good SHA-256 (§4.2).
type GameIntegrityAnalyzer struct {
	Known []KnownFile
}

func NewGameIntegrityAnalyzer(known []KnownFile) *GameIntegrityAnalyzer {
	return &GameIntegrityAnalyzer{Known: known}
}

func (a *GameIntegrityAnalyzer) Name() string  { return "GameIntegrityAnalyzer" }
func (a *GameIntegrityAnalyzer) Priority() int { return 35 }
func (a *GameIntegrityAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindFileIntegrity}
}

func (a *GameIntegrityAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	root := settingsRootFor(ctx)

	var children []*report.Fragment
	for _, kf := range a.Known {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		full := filepath.Join(root, kf.RelativePath)
		sum, err := sha256File(full)
		switch {
		case os.IsNotExist(err):
			children = append(children, report.Leaf(report.KindError, kf.RelativePath, 0, "missing"))
		case err != nil:
			children = append(children, report.Leaf(report.KindError, kf.RelativePath, 0, err.Error()))
		case sum != kf.SHA256Hex:
			children = append(children, report.Leaf(report.KindWarning, kf.RelativePath, 1, "hash mismatch (modified or outdated)"))
		default:
			children = append(children, report.Leaf(report.KindSuccess, kf.RelativePath, 2, "verified"))
		}
	}

	frag := report.Section("Game File Integrity", 50, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
