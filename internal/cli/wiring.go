package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/analyzer/builtins"
	"github.com/scanner111/scanner111/internal/display"
	"github.com/scanner111/scanner111/internal/logging"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// buildRegistry wires every built-in analyzer into a fresh registry
// (§4.3: "the full set is wired at startup", no filesystem discovery).
func buildRegistry() *analyzer.Registry {
	reg := analyzer.NewRegistry()

	reg.MustRegister(builtins.NewPluginAnalyzer([]builtins.PluginWarning{
		{Plugin: "SonOfASkyrimAE.esp", Severity: types.SeverityWarning, Reason: "known to cause save-bloat crashes on long sessions"},
	}))
	reg.MustRegister(builtins.NewModConflictAnalyzer([]builtins.ConflictRule{
		{PluginA: "UnofficialPatch.esp", PluginB: "ConflictingTweak.esp", Severity: types.SeverityWarning, Reason: "duplicate record edits"},
	}))
	reg.MustRegister(builtins.NewImportantModsAnalyzer([]builtins.RecommendedMod{
		{Plugin: "Buffout4.esp", Reason: "crash-log generation and engine-level crash mitigation"},
	}))
	reg.MustRegister(builtins.NewPluginLimitAnalyzer())
	reg.MustRegister(builtins.NewFormIdAnalyzer(nil))
	reg.MustRegister(builtins.NewRecordScannerAnalyzer())
	reg.MustRegister(builtins.NewSuspectScannerAnalyzer(nil))
	reg.MustRegister(builtins.NewSettingsAnalyzer([]builtins.ExpectedSetting{
		{File: "Buffout4.toml", Key: "Patches.Achievements", Expected: true, Reason: "avoids conflicts with achievement-unlocking mods"},
	}))
	reg.MustRegister(builtins.NewGameIntegrityAnalyzer(nil))
	reg.MustRegister(builtins.NewPathValidationAnalyzer())
	reg.MustRegister(builtins.NewDocumentsPathAnalyzer([]builtins.IniToggle{
		{File: "Fallout4Custom.ini", Key: "bInvalidateOlderFiles"},
	}))
	reg.MustRegister(builtins.NewGpuAnalyzer())
	reg.MustRegister(builtins.NewModDetectionAnalyzer([]builtins.ModSignature{
		{Contains: "cc", Label: "Creation Club content"},
	}))
	reg.MustRegister(builtins.NewModFileScanAnalyzer([]string{".bgsm", ".psc"}))

	return reg
}

func buildSettings() *settings.View {
	view := settings.New()
	home, err := os.UserHomeDir()
	if err == nil {
		_ = view.LoadScope(settings.ScopeMain, filepath.Join(home, ".scanner111", "main.yaml"))
		_ = view.LoadScope(settings.ScopeSettings, filepath.Join(home, ".scanner111", "settings.yaml"))
	}
	return view
}

func buildLogger() logging.Logger {
	level := logging.LevelInfo
	if flagVerbose {
		level = logging.LevelDebug
	}
	return logging.NewTerminal(level, flagNoColor)
}

func buildDisplay() *display.Display {
	return display.NewWithOptions(flagNoColor)
}

func analyzerNames() []string {
	trimmed := strings.TrimSpace(flagAnalyzers)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var xseAcronymRe = regexp.MustCompile(`(?i)(f4se|skse|nvse|fose)`)

// guessXSEAcronym infers the script-extender acronym from context when the
// caller doesn't specify one, defaulting to F4SE.
func guessXSEAcronym(gameName string) string {
	if m := xseAcronymRe.FindString(gameName); m != "" {
		return strings.ToUpper(m)
	}
	return "F4SE"
}
