package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/mdextract/internal/output"
	"github.com/jmylchreest/mdextract/pkg/converter"
	"github.com/jmylchreest/mdextract/pkg/extract"
)

const testPage = `<html><body>
<nav><a href="/">Home</a></nav>
<main><h1>Release Notes</h1><p>Version two adds a faster parser.</p></main>
<footer>Copyright</footer>
</body></html>`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func newExtractCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addExtractFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return cmd
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"500KB", 500000, false},
		{"5MiB", 5 * 1024 * 1024, false},
		{"lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	path := writeTemp(t, "page.html", "<p>hello</p>")

	t.Run("file", func(t *testing.T) {
		got, err := readInput(path, nil, 0)
		if err != nil || got != "<p>hello</p>" {
			t.Errorf("readInput() = %q, %v", got, err)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		got, err := readInput("-", strings.NewReader("<p>piped</p>"), 0)
		if err != nil || got != "<p>piped</p>" {
			t.Errorf("readInput() = %q, %v", got, err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		if _, err := readInput(path, nil, 5); err == nil || !strings.Contains(err.Error(), "exceeds max input size") {
			t.Errorf("expected size error, got %v", err)
		}
		if _, err := readInput(path, nil, 12); err != nil {
			t.Errorf("input at the limit should be accepted: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readInput(filepath.Join(t.TempDir(), "nope.html"), nil, 0); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := buildConfig(newExtractCmd(t))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.MinContentLength != 500 || cfg.DisableFallback {
			t.Errorf("expected default config, got %+v", cfg)
		}
	})

	t.Run("flags", func(t *testing.T) {
		cmd := newExtractCmd(t,
			"--preset", "simple",
			"--root", ".story",
			"--exclude-class", "promo",
			"--exclude-id", "related",
			"--min-length", "100",
			"--no-fallback",
		)
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.RootSelectors[0] != ".story" {
			t.Errorf("expected --root to be tried first, got %v", cfg.RootSelectors)
		}
		if !cfg.HideExcluded {
			t.Error("expected simple preset to hide excluded elements")
		}
		if cfg.ChromeClassPatterns[len(cfg.ChromeClassPatterns)-1] != "promo" {
			t.Errorf("expected promo pattern, got %v", cfg.ChromeClassPatterns)
		}
		if cfg.ChromeIDs[len(cfg.ChromeIDs)-1] != "related" {
			t.Errorf("expected related id, got %v", cfg.ChromeIDs)
		}
		if cfg.MinContentLength != 100 || !cfg.DisableFallback {
			t.Errorf("unexpected cascade settings %+v", cfg)
		}
	})

	t.Run("config file zero values apply", func(t *testing.T) {
		viper.Set("extract", map[string]any{
			"complementary_width_ratio": 0.0,
			"min_content_length":        0,
		})
		t.Cleanup(func() { viper.Set("extract", nil) })

		cfg, err := buildConfig(newExtractCmd(t))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.ComplementaryWidthRatio != 0 {
			t.Errorf("expected ratio 0 from config file, got %v", cfg.ComplementaryWidthRatio)
		}
		if cfg.MinContentLength != 0 {
			t.Errorf("expected min length 0, got %d", cfg.MinContentLength)
		}
	})

	t.Run("config file false overrides preset", func(t *testing.T) {
		viper.Set("extract", map[string]any{"hide_excluded": false})
		t.Cleanup(func() { viper.Set("extract", nil) })

		cfg, err := buildConfig(newExtractCmd(t, "--preset", "simple"))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.HideExcluded {
			t.Error("expected hide_excluded: false to override the simple preset")
		}
	})

	t.Run("config file unset keys keep preset", func(t *testing.T) {
		viper.Set("extract", map[string]any{"min_harvest_length": 40})
		t.Cleanup(func() { viper.Set("extract", nil) })

		cfg, err := buildConfig(newExtractCmd(t, "--preset", "simple"))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if !cfg.HideExcluded || cfg.MinHarvestLength != 40 {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	t.Run("min length zero is kept", func(t *testing.T) {
		cfg, err := buildConfig(newExtractCmd(t, "--min-length", "0"))
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.MinContentLength != 0 {
			t.Errorf("expected 0, got %d", cfg.MinContentLength)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := buildConfig(newExtractCmd(t, "--preset", "nope")); err == nil {
			t.Error("expected unknown preset error")
		}
		if _, err := buildConfig(newExtractCmd(t, "--min-length=-1")); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestConvertDocument(t *testing.T) {
	cfg := extract.PresetStrict()

	result, err := convertDocument(converter.EngineExtract, cfg, testPage)
	if err != nil {
		t.Fatalf("convertDocument() error = %v", err)
	}
	if result.Content != "# Release Notes\n\nVersion two adds a faster parser." {
		t.Errorf("unexpected content %q", result.Content)
	}
	if result.Stats.Root != "main" {
		t.Errorf("expected main root, got %q", result.Stats.Root)
	}

	result, err = convertDocument(converter.EngineNoop, cfg, testPage)
	if err != nil {
		t.Fatalf("convertDocument() error = %v", err)
	}
	if result.Content != testPage || result.Stats.OutputBytes != len(testPage) {
		t.Errorf("expected noop passthrough with sizes, got %+v", result.Stats)
	}

	if _, err := convertDocument("nope", cfg, testPage); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestWriteRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRoot(&buf, testPage, extract.DefaultConfig()); err != nil {
		t.Fatalf("writeRoot() error = %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "<!-- root: main -->") {
		t.Errorf("expected root label, got %q", got)
	}
	if !strings.Contains(got, "<main>") || strings.Contains(got, "<nav>") {
		t.Errorf("expected only the main element, got %q", got)
	}
}

func TestCompareEngines(t *testing.T) {
	rows := compareEngines(extract.DefaultConfig(), testPage)
	if len(rows) != len(converter.Names()) {
		t.Fatalf("expected a row per engine, got %d", len(rows))
	}

	var buf bytes.Buffer
	writeComparison(&buf, len(testPage), rows)
	out := buf.String()
	for _, want := range []string{"Input: ", "Engine", "extract", "noop", "readability"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestWriteComparisonError(t *testing.T) {
	var buf bytes.Buffer
	writeComparison(&buf, 0, []comparison{{engine: "broken", err: os.ErrInvalid}})
	if !strings.Contains(buf.String(), "ERROR") {
		t.Errorf("expected error row, got %q", buf.String())
	}
}

func TestConvertCommand(t *testing.T) {
	path := writeTemp(t, "page.html", testPage)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"convert", path, "--format", "json", "--preset", "strict", "-q"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("expected JSON report, got %q: %v", stdout.String(), err)
	}
	if report.Source != path || report.Engine != "extract" {
		t.Errorf("unexpected report header %+v", report)
	}
	if !strings.HasPrefix(report.Content, "# Release Notes") {
		t.Errorf("unexpected content %q", report.Content)
	}
	if report.Stats == nil || report.Stats.Stage != extract.StagePrimary {
		t.Errorf("expected stats in report, got %+v", report.Stats)
	}
}

func TestConvertCommandCompact(t *testing.T) {
	path := writeTemp(t, "page.html", testPage)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"convert", path, "--format", "json", "--compact", "-q"})
	defer rootCmd.SetArgs(nil)
	defer func() { _ = convertCmd.Flags().Set("compact", "false") }()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := strings.TrimSpace(stdout.String())
	if strings.Contains(out, "\n  ") || !strings.HasPrefix(out, `{"source":`) {
		t.Errorf("expected compact JSON, got %q", out)
	}
}
