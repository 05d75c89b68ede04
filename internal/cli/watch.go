package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanner111/scanner111/internal/orchestrator"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/types"
	"github.com/scanner111/scanner111/internal/watcher"
)

const defaultDebounceWindow = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and reanalyze crash logs on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagScanDir == "" {
			return userError("--scan-dir is required for watch")
		}

		disp := buildDisplay()
		logger := buildLogger()
		reg := buildRegistry()
		view := buildSettings()
		orch := orchestrator.New(reg, view, logger)

		w, err := watcher.New(flagScanDir, defaultDebounceWindow, watcher.NewRealTimer)
		if err != nil {
			return internalError("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go w.Run(ctx)
		disp.Info(fmt.Sprintf("watching %s (debounce %s)", flagScanDir, defaultDebounceWindow))

		for {
			select {
			case <-ctx.Done():
				return nil
			case path := <-w.Changes():
				result := orch.RunAnalysis(ctx, orchestrator.Request{
					InputPath:    path,
					AnalysisKind: types.KindCrashLog,
					XSEAcronym:   guessXSEAcronym(path),
				})
				var maxSeverity types.Severity = types.SeverityNone
				var fragments []*report.Fragment
				var findings int
				for _, r := range result.Results {
					maxSeverity = types.Max(maxSeverity, r.Severity)
					if r.HasFindings {
						findings++
					}
					fragments = append(fragments, r.Fragment)
				}
				disp.Summary(path, findings, maxSeverity, result.Duration)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
