package builtins

import (
	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/settings"
)

// settingsRootFor resolves the directory analyzers search for mod config
// files, from the "mods_root" key in the Settings scope, defaulting to the
// current directory.
func settingsRootFor(ctx *analyzer.AnalysisContext) string {
	return settings.Get(ctx.Settings, settings.ScopeSettings, "mods_root", ".")
}
