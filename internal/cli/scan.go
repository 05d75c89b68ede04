package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanner111/scanner111/internal/orchestrator"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/session"
	"github.com/scanner111/scanner111/internal/stats"
	"github.com/scanner111/scanner111/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze one crash log or a directory of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(types.KindCrashLog)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// runScan implements the common path shared by `scan` and `fcx`: resolve
// target log(s), run the orchestrator, render and print/write the report,
// record a session and a statistics row, and set the process exit code
// per §6.
func runScan(kind types.AnalysisKind) error {
	logger := buildLogger()
	disp := buildDisplay()

	targets, err := resolveTargets()
	if err != nil {
		return userError("%v", err)
	}

	reg := buildRegistry()
	view := buildSettings()
	orch := orchestrator.New(reg, view, logger)

	var maxSeverity types.Severity = types.SeverityNone
	var fragments []*report.Fragment
	var totalFindings int

	for _, target := range targets {
		sess := session.New(target)
		start := time.Now()

		result := orch.RunAnalysis(context.Background(), orchestrator.Request{
			InputPath:         target,
			AnalysisKind:      kind,
			SelectedAnalyzers: analyzerNames(),
			XSEAcronym:        guessXSEAcronym(target),
			MaxParallel:       flagMaxParallel,
		})
		sess.Finish(result.Results)

		for _, r := range result.Results {
			maxSeverity = types.Max(maxSeverity, r.Severity)
			if r.HasFindings {
				totalFindings++
			}
			fragments = append(fragments, r.Fragment)
			if !flagNoProgress {
				disp.Finding(r.AnalyzerName, r.Severity, r.Duration, string(r.Status))
			}
		}

		recordSessionAndStats(target, sess, result, kind, start)
	}

	if err := writeReport(fragments); err != nil {
		return internalError("writing report: %v", err)
	}

	if !flagNoProgress && len(targets) > 0 {
		disp.Summary(targets[len(targets)-1], totalFindings, maxSeverity, 0)
	}

	if maxSeverity == types.SeverityCritical {
		exitCode = 2
	}
	return nil
}

func resolveTargets() ([]string, error) {
	if flagLogFile != "" {
		if _, err := os.Stat(flagLogFile); err != nil {
			return nil, fmt.Errorf("log file not found: %s", flagLogFile)
		}
		return []string{flagLogFile}, nil
	}
	if flagScanDir != "" {
		entries, err := os.ReadDir(flagScanDir)
		if err != nil {
			return nil, fmt.Errorf("scan dir not found: %s", flagScanDir)
		}
		var out []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".log") {
				out = append(out, filepath.Join(flagScanDir, e.Name()))
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("no .log files found under %s", flagScanDir)
		}
		return out, nil
	}
	return nil, fmt.Errorf("one of --log-file or --scan-dir is required")
}

func writeReport(fragments []*report.Fragment) error {
	format := report.Format(strings.ToLower(flagFormat))
	body, err := report.NewComposer().ComposeFromFragments(fragments, format, report.DefaultOptions())
	if err != nil {
		return err
	}
	if flagOutput == "" {
		fmt.Println(body)
		return nil
	}
	return os.WriteFile(flagOutput, []byte(body), 0o644)
}

func recordSessionAndStats(target string, sess *session.Session, result *orchestrator.Result, kind types.AnalysisKind, start time.Time) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if store, err := session.NewStore(filepath.Join(home, ".scanner111", "sessions")); err == nil {
		_ = store.Save(sess)
	}

	statsStore, err := stats.NewStore(filepath.Join(home, ".scanner111", "stats.jsonl"))
	if err != nil {
		return
	}

	row := stats.Row{
		Timestamp:        time.Now().UTC(),
		LogFilePath:      target,
		GameType:         string(kind),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	for _, r := range result.Results {
		if !r.HasFindings {
			continue
		}
		row.TotalIssuesFound++
		switch r.Severity {
		case types.SeverityCritical, types.SeverityError:
			row.Critical++
			if row.PrimaryIssueType == "" {
				row.PrimaryIssueType = r.AnalyzerName
			}
		case types.SeverityWarning:
			row.Warning++
		case types.SeverityInfo:
			row.Info++
		}
	}
	row.WasSolved = row.Critical == 0
	_ = statsStore.Append(row)
}
