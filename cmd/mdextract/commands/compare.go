package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/mdextract/internal/logger"
	"github.com/jmylchreest/mdextract/pkg/converter"
	"github.com/jmylchreest/mdextract/pkg/extract"
)

var compareCmd = &cobra.Command{
	Use:   "compare [file|-]",
	Short: "Run every engine on the same document and compare output sizes",
	Long: `Compare runs every conversion engine on one HTML document and prints a
table of output size, reduction and time.

Examples:
  mdextract compare page.html
  mdextract compare page.html --preset simple`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addExtractFlags(compareCmd)
	compareCmd.Flags().String("max-input-size", "10MB", "max input document size (e.g. 500KB, 5MB, 0=unlimited)")
}

// comparison is one row of the compare table.
type comparison struct {
	engine   string
	output   int
	duration time.Duration
	err      error
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	limit, err := parseSize(setting(cmd, "max-input-size", "max_input_size"))
	if err != nil {
		return err
	}

	source := stdinSource
	if len(args) == 1 {
		source = args[0]
	}
	doc, err := readInput(source, cmd.InOrStdin(), limit)
	if err != nil {
		return err
	}

	rows := compareEngines(cfg, doc)
	writeComparison(cmd.OutOrStdout(), len(doc), rows)
	return nil
}

// compareEngines converts doc with every registered engine.
func compareEngines(cfg *extract.Config, doc string) []comparison {
	var rows []comparison
	for _, name := range converter.Names() {
		conv, err := converter.New(name, cfg)
		if err != nil {
			rows = append(rows, comparison{engine: name, err: err})
			continue
		}

		start := time.Now()
		out, err := conv.Convert(doc)
		row := comparison{engine: conv.Name(), output: len(out), duration: time.Since(start), err: err}
		if err != nil {
			logger.Warn("engine failed", "engine", name, "error", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeComparison(w io.Writer, input int, rows []comparison) {
	fmt.Fprintf(w, "Input: %s\n\n", humanize.Bytes(uint64(input)))
	fmt.Fprintf(w, "%-40s %10s %8s %10s\n", "Engine", "Output", "Reduce%", "Time")
	fmt.Fprintf(w, "%-40s %10s %8s %10s\n", "------", "------", "-------", "----")

	for _, r := range rows {
		if r.err != nil {
			fmt.Fprintf(w, "%-40s %10s %8s %10v (error: %v)\n",
				r.engine, "ERROR", "-", r.duration.Round(time.Millisecond), r.err)
			continue
		}

		reduction := 0.0
		if input > 0 {
			reduction = float64(input-r.output) / float64(input) * 100
		}
		fmt.Fprintf(w, "%-40s %10s %7.1f%% %10v\n",
			r.engine, humanize.Bytes(uint64(r.output)), reduction, r.duration.Round(time.Millisecond))
	}
}
