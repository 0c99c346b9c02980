package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/jmylchreest/mdextract/internal/logger"
	"github.com/jmylchreest/mdextract/internal/output"
	"github.com/jmylchreest/mdextract/pkg/converter"
	"github.com/jmylchreest/mdextract/pkg/extract"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file...|-]",
	Short: "Convert HTML documents to Markdown",
	Long: `Convert one or more HTML files to Markdown. With no arguments, or "-",
the document is read from stdin.

Examples:
  mdextract convert page.html
  mdextract convert a.html b.html --format jsonl -o out.jsonl
  mdextract convert page.html --preset strict --stats
  mdextract convert page.html --engine readability`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	addExtractFlags(convertCmd)

	flags.String("engine", converter.EngineExtract, "conversion engine: "+strings.Join(converter.Names(), ", "))
	flags.String("format", string(output.FormatMarkdown), "output format: markdown, json, jsonl, yaml")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("compact", false, "write JSON without indentation")
	flags.Bool("stats", false, "print extraction stats to stderr")
	flags.String("max-input-size", "10MB", "max input document size (e.g. 500KB, 5MB, 0=unlimited)")
	flags.Bool("dump-root", false, "print the selected root element's HTML to stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	engine := setting(cmd, "engine", "engine")
	format, err := output.ParseFormat(setting(cmd, "format", "format"))
	if err != nil {
		return err
	}
	limit, err := parseSize(setting(cmd, "max-input-size", "max_input_size"))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	showStats, _ := flags.GetBool("stats")
	dumpRoot, _ := flags.GetBool("dump-root")
	outputFile, _ := flags.GetString("output")
	compact, _ := flags.GetBool("compact")

	var out io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w, err := output.NewWriter(out, format, output.WithPretty(!compact))
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	for _, source := range sources {
		doc, err := readInput(source, cmd.InOrStdin(), limit)
		if err != nil {
			_ = w.Close()
			return err
		}

		if dumpRoot {
			if err := writeRoot(cmd.ErrOrStderr(), doc, cfg); err != nil {
				logger.Warn("failed to dump root", "source", source, "error", err)
			}
		}

		result, err := convertDocument(engine, cfg, doc)
		if err != nil {
			_ = w.Close()
			return fmt.Errorf("converting %s: %w", source, err)
		}

		for _, warning := range result.Warnings {
			logger.Warn("extraction warning", "source", source, "phase", warning.Phase, "message", warning.Message, "context", warning.Context)
		}
		logger.Info("converted",
			"source", source,
			"engine", engine,
			"stage", result.Stats.Stage,
			"input", result.Stats.InputBytes,
			"output", result.Stats.OutputBytes)

		if showStats {
			fmt.Fprintf(cmd.ErrOrStderr(), "=== %s ===\n%s\n", source, result.Stats.String())
		}

		if err := w.Write(output.NewReport(source, engine, result)); err != nil {
			_ = w.Close()
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return w.Close()
}

// convertDocument runs the named engine. The extract engine reports its own
// stats; other engines get size and timing only.
func convertDocument(engine string, cfg *extract.Config, doc string) (*extract.Result, error) {
	if engine == converter.EngineExtract {
		return extract.New(cfg).ExtractWithStats(doc), nil
	}

	conv, err := converter.New(engine, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := conv.Convert(doc)
	if err != nil {
		return nil, err
	}

	stats := extract.NewStats()
	stats.InputBytes = len(doc)
	stats.OutputBytes = len(content)
	stats.TotalDuration = time.Since(start)
	return &extract.Result{Content: content, Stats: stats}, nil
}

// writeRoot prints the root element the extractor would start from.
func writeRoot(w io.Writer, doc string, cfg *extract.Config) error {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return err
	}
	root, label := extract.SelectRoot(parsed.Nodes[0], cfg.RootSelectors)
	if root == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "<!-- root: %s -->\n%s\n", label, gohtml.Format(buf.String()))
	return err
}
