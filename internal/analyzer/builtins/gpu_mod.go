package builtins

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/parser"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

// gpuVendorSignatures maps a module-name substring (as it appears in the
// log's MODULES: segment) to the vendor it implies (§4.2 "Infer GPU
// vendor from modules segment").
var gpuVendorSignatures = map[string]string{
	"nvwgf2um":  "NVIDIA",
	"nvoglv":    "NVIDIA",
	"atioglxx":  "AMD",
	"atidxx":    "AMD",
	"igdumdim":  "Intel",
	"igd10iumd": "Intel",
}

// GpuAnalyzer infers the GPU vendor in play from the crash log's modules
// segment (§4.2).
type GpuAnalyzer struct{}

func NewGpuAnalyzer() *GpuAnalyzer { return &GpuAnalyzer{} }

func (a *GpuAnalyzer) Name() string  { return "GpuAnalyzer" }
func (a *GpuAnalyzer) Priority() int { return 5 }
func (a *GpuAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog}
}

func (a *GpuAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	modules := ctx.ParsedLog.OtherSegments[parser.HeaderModules]

	vendors := make(map[string]bool)
	for _, line := range modules {
		lower := strings.ToLower(line)
		for sig, vendor := range gpuVendorSignatures {
			if strings.Contains(lower, sig) {
				vendors[vendor] = true
			}
		}
	}

	var frag *report.Fragment
	if len(vendors) == 0 {
		frag = report.Leaf(report.KindInfo, "GPU Vendor", 0, parser.UnknownValue)
	} else {
		names := make([]string, 0, len(vendors))
		for v := range vendors {
			names = append(names, v)
		}
		vendor := strings.Join(names, ", ")
		frag = report.Leaf(report.KindInfo, "GPU Vendor", 0, vendor)
		// §3's worked cross-analyzer fact: later analyzers (e.g. the
		// suspect scanner annotating a graphics-driver crash) can read
		// this back via ctx.Shared without depending on run order.
		ctx.Shared.Set(a.Name(), "gpu_vendor", vendor)
	}
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

// ModSignature is a plugin-name substring known to indicate a mod family
// (e.g. Creation Club content), used by ModDetectionAnalyzer.
type ModSignature struct {
	Contains string
	Label    string
}

// ModDetectionAnalyzer detects mod families present from the plugin list
// (§4.2 "detect mod presence from plugin list").
type ModDetectionAnalyzer struct {
	Signatures []ModSignature
}

func NewModDetectionAnalyzer(sigs []ModSignature) *ModDetectionAnalyzer {
	return &ModDetectionAnalyzer{Signatures: sigs}
}

func (a *ModDetectionAnalyzer) Name() string  { return "ModDetectionAnalyzer" }
func (a *ModDetectionAnalyzer) Priority() int { return 5 }
func (a *ModDetectionAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindCrashLog, types.KindModScan}
}

func (a *ModDetectionAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	found := make(map[string]bool)
	for _, name := range ctx.ParsedLog.Plugins.Names() {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		for _, sig := range a.Signatures {
			if strings.Contains(name, sig.Contains) {
				found[sig.Label] = true
			}
		}
	}

	var children []*report.Fragment
	for label := range found {
		children = append(children, report.Leaf(report.KindInfo, label, 0, "detected"))
	}
	frag := report.Section("Detected Mod Families", 80, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}

// ModFileScanAnalyzer enumerates a mod staging folder and flags file
// extensions known to be problematic when left loose instead of packed
// into a BA2/BSA archive (§4.2 "scan mod staging folder contents").
type ModFileScanAnalyzer struct {
	FlaggedExtensions []string
}

func NewModFileScanAnalyzer(extensions []string) *ModFileScanAnalyzer {
	return &ModFileScanAnalyzer{FlaggedExtensions: extensions}
}

func (a *ModFileScanAnalyzer) Name() string  { return "ModFileScanAnalyzer" }
func (a *ModFileScanAnalyzer) Priority() int { return 5 }
func (a *ModFileScanAnalyzer) SupportedKinds() []types.AnalysisKind {
	return []types.AnalysisKind{types.KindModScan}
}

func (a *ModFileScanAnalyzer) Analyze(ctx *analyzer.AnalysisContext) *analyzer.Result {
	start := timeNow()
	stagingDir := settings.Get(ctx.Settings, settings.ScopeSettings, "mod_staging_path", "")
	if stagingDir == "" {
		return analyzer.Skipped(a.Name(), "mod_staging_path not configured")
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return analyzer.Failed(a.Name(), time.Since(start), err)
	}

	counts := make(map[string]int)
	for _, e := range entries {
		if ctx.Cancelled() {
			return analyzer.Skipped(a.Name(), "cancelled")
		}
		if e.IsDir() {
			continue
		}
		for _, ext := range a.FlaggedExtensions {
			if strings.HasSuffix(strings.ToLower(e.Name()), strings.ToLower(ext)) {
				counts[ext]++
			}
		}
	}

	var children []*report.Fragment
	for _, ext := range a.FlaggedExtensions {
		if n := counts[ext]; n > 0 {
			children = append(children, report.Leaf(report.KindWarning, ext, 0,
				fmt.Sprintf("%d loose file(s) — consider packing into an archive", n)))
		}
	}
	frag := report.Section("Mod Staging Scan", 90, children...)
	return analyzer.OK(a.Name(), time.Since(start), frag)
}
