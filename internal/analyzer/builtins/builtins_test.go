package builtins

import (
	"context"
	"strings"
	"testing"

	"github.com/scanner111/scanner111/internal/analyzer"
	"github.com/scanner111/scanner111/internal/logging"
	"github.com/scanner111/scanner111/internal/parser"
	"github.com/scanner111/scanner111/internal/report"
	"github.com/scanner111/scanner111/internal/settings"
	"github.com/scanner111/scanner111/internal/types"
)

func newTestContext(t *testing.T, crashLog string) *analyzer.AnalysisContext {
	t.Helper()
	parsed, err := parser.ParseBytes("test.log", []byte(crashLog), "F4SE")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return analyzer.NewAnalysisContext(context.Background(), parsed, settings.New(), "Fallout4", types.KindCrashLog, logging.NewNoop())
}

// TestFormIdAnalyzer_S2 covers §8 S2: Form ID filter drops the 0xFF-prefixed id.
func TestFormIdAnalyzer_S2(t *testing.T) {
	log := "Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\nPROBABLE CALL STACK:\n" +
		"\t[0] Form ID: 0x0001A332\n" +
		"\t[1] Form ID: 0x00014E45\n" +
		"\t[2] Form ID: 0xFF000000\n"
	ctx := newTestContext(t, log)

	result := NewFormIdAnalyzer(nil).Analyze(ctx)
	if result.Metadata["form_ids"] != "00014E45,0001A332" {
		t.Fatalf("form_ids = %q", result.Metadata["form_ids"])
	}
}

// TestFormIdAnalyzer_EmptyReportsNoSuspects covers §8 S2's "COULDN'T FIND"
// marker, present if and only if the filtered set is empty.
func TestFormIdAnalyzer_EmptyReportsNoSuspects(t *testing.T) {
	ctx := newTestContext(t, "Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\nPROBABLE CALL STACK:\n\tnothing here\n")
	result := NewFormIdAnalyzer(nil).Analyze(ctx)
	if !strings.Contains(result.Fragment.Content, "COULDN'T FIND ANY FORM ID SUSPECTS") {
		t.Fatalf("expected no-suspects marker, got %q", result.Fragment.Content)
	}
}

// TestFormIdAnalyzer_S3 covers §8 S3: duplicate Form ID counting and
// plugin-owner resolution via the load-order token.
func TestFormIdAnalyzer_S3(t *testing.T) {
	log := "Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\n" +
		"PROBABLE CALL STACK:\n" +
		"\tForm ID: 0x00012345\n" +
		"\tForm ID: 0x00012345\n" +
		"\tForm ID: 0x00012345\n" +
		"\tForm ID: 0x00067890\n\n" +
		"F4SE PLUGINS:\n" +
		"\t[00] TestPlugin.esp\n"
	ctx := newTestContext(t, log)

	result := NewFormIdAnalyzer(nil).Analyze(ctx)
	if !strings.Contains(result.Fragment.Content, "- Form ID: 00012345 | [TestPlugin.esp] | 3") {
		t.Errorf("missing expected triple-count line, got:\n%s", result.Fragment.Content)
	}
	if !strings.Contains(result.Fragment.Content, "- Form ID: 00067890 | [TestPlugin.esp] | 1") {
		t.Errorf("missing expected single-count line, got:\n%s", result.Fragment.Content)
	}
}

// TestPluginLimitAnalyzer_S4 covers §8 S4's threshold table.
func TestPluginLimitAnalyzer_S4(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{239, ""},
		{240, "Approaching Full Plugin Limit"},
		{254, "Approaching Full Plugin Limit"},
		{255, "Full Plugin Limit Exceeded"},
	}

	for _, c := range cases {
		var sb strings.Builder
		sb.WriteString("Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\nF4SE PLUGINS:\n")
		for i := 0; i < c.count; i++ {
			sb.WriteString(hexLine(i))
		}
		ctx := newTestContext(t, sb.String())
		result := NewPluginLimitAnalyzer().Analyze(ctx)
		if c.want == "" {
			if result.Fragment.Title != "" {
				t.Errorf("count=%d: expected no finding, got %q", c.count, result.Fragment.Title)
			}
			continue
		}
		if result.Fragment.Title != c.want {
			t.Errorf("count=%d: title = %q, want %q", c.count, result.Fragment.Title, c.want)
		}
	}
}

// hexLine renders the j'th distinct full-plugin load-order line, skipping
// the 0xFE slot (reserved for the light-plugin header, never a full
// plugin) so callers asking for N lines get N full-plugin tokens.
func hexLine(j int) string {
	const hexDigits = "0123456789ABCDEF"
	value := j
	if value >= 0xFE {
		value++
	}
	hi := hexDigits[(value/16)%16]
	lo := hexDigits[value%16]
	return "\t[" + string(hi) + string(lo) + "] Plugin" + string(rune('A'+j%26)) + string(rune('0'+(j/26)%10)) + ".esp\n"
}

// TestSuspectScannerAnalyzer_S5 covers §8 S5's pattern table.
func TestSuspectScannerAnalyzer_S5(t *testing.T) {
	cases := []struct {
		mainError string
		wantID    string
	}{
		{"Unhandled exception: out of memory", "MemoryError"},
		{"Unhandled exception: null pointer", "NullReferenceError"},
		{"Unhandled exception: directx error", "GraphicsError"},
	}

	for _, c := range cases {
		log := "Fallout 4 v1.10.984\nBuffout4 v1.26.2\n\n" + c.mainError + "\n\nPROBABLE CALL STACK:\n\tframe\n"
		ctx := newTestContext(t, log)
		result := NewSuspectScannerAnalyzer(nil).Analyze(ctx)
		if !containsChildTitle(result.Fragment, c.wantID) {
			t.Errorf("mainError=%q: expected child %q, got %+v", c.mainError, c.wantID, result.Fragment)
		}
	}
}

func containsChildTitle(f *report.Fragment, title string) bool {
	for _, c := range f.Children {
		if c.Title == title {
			return true
		}
	}
	return false
}
