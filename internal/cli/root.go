// Package cli implements the scanner111 command surface (§6): scan, fcx,
// config, watch, about, interactive. One file per subcommand, wired
// together through a package-level cobra root command — the same layout
// the teacher's internal/cli uses.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set by the release process via ldflags.
var Version = "dev"

var (
	flagLogFile     string
	flagScanDir     string
	flagOutput      string
	flagFormat      string
	flagAnalyzers   string
	flagVerbose     bool
	flagNoColor     bool
	flagNoProgress  bool
	flagMaxParallel int
)

var rootCmd = &cobra.Command{
	Use:     "scanner111",
	Short:   "Crash log analysis for Bethesda-engine games",
	Version: Version,
	Long: `scanner111 parses and analyzes Bethesda-game crash logs, flagging
suspect plugins, conflicting mods, Form ID hot spots, settings
misconfiguration, and game-file integrity problems.

Commands:
  scan          Analyze one crash log or a directory of them
  fcx           Run the file-integrity/crash-exchange checks only
  config        View or modify scanner111 settings
  watch         Watch a directory and reanalyze on change
  about         Print version and build information
  interactive   Prompt-driven session for repeated scans`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "path to a single crash log")
	rootCmd.PersistentFlags().StringVar(&flagScanDir, "scan-dir", "", "directory of crash logs to scan")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "write the report to this path instead of stdout")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "markdown", "report format: markdown|html|json|text")
	rootCmd.PersistentFlags().StringVar(&flagAnalyzers, "analyzers", "", "comma-separated analyzer names (default: all)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().BoolVar(&flagNoProgress, "no-progress", false, "suppress progress output")
	rootCmd.PersistentFlags().IntVar(&flagMaxParallel, "max-parallel", 0, "maximum concurrent analyzers (0 = auto)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("scanner111 version %s\n", Version))
}

// Execute runs the CLI and returns the process exit code (§6):
// 0 success, 1 user error, 2 critical findings, 3 internal failure.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCoder); ok {
			return code.ExitCode()
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return exitCode
}

// exitCode is set by subcommands that need to report something other
// than plain success/failure (e.g. critical findings => 2). cobra's RunE
// only distinguishes "error" from "no error", so commands needing the
// finer-grained exit codes from §6 set this package variable directly.
var exitCode int

// exitCoder lets a returned error carry an explicit process exit code.
type exitCoder interface {
	error
	ExitCode() int
}

type cliError struct {
	msg  string
	code int
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) ExitCode() int { return e.code }

// userError reports a bad path or unknown analyzer (exit code 1).
func userError(format string, args ...interface{}) error {
	return &cliError{msg: fmt.Sprintf(format, args...), code: 1}
}

// internalError reports an internal failure (exit code 3).
func internalError(format string, args ...interface{}) error {
	return &cliError{msg: fmt.Sprintf(format, args...), code: 3}
}
