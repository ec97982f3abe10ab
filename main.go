package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kamilpajak/apv/internal/demo"
	"github.com/kamilpajak/apv/internal/progress"
	"github.com/kamilpajak/apv/internal/report"
	"github.com/kamilpajak/apv/pkg/models"
	"github.com/spf13/cobra"
)

// Version info set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "apv",
	Short: "APV synthetic immunization demo",
	Long: `Runs the APV concept demo (simulation): reproduces the reported baseline
and APV metrics, writes results.json and renders the figures into ./figures.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("apv %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "Running APV concept demo (simulation)...")

	emitter := progress.NewTextEmitter(os.Stderr)
	r, err := demo.Run(context.Background(), demo.Params{Emitter: emitter})
	emitter.Close()
	if err != nil {
		// Already printed by the emitter; the exit status still reports it.
		cmd.SilenceErrors = true
		return fmt.Errorf("demo failed: %w", err)
	}

	return printSummary(os.Stderr, os.Stdout, r)
}

// printSummary writes a colored comparison table to stderr and the JSON
// summary to stdout.
func printSummary(stderr, stdout io.Writer, r *models.Report) error {
	dim := color.New(color.FgHiBlack)
	bold := color.New(color.Bold)

	fmt.Fprintln(stderr)
	_, _ = bold.Fprintln(stderr, "  Baseline vs APV")
	_, _ = dim.Fprintln(stderr, "  "+strings.Repeat("━", 50))

	t1 := r.Tables.Table1
	for i, label := range t1.Metric {
		if i >= len(t1.Baseline) || i >= len(t1.APV) || i >= len(t1.RelativeGainPercent) {
			break
		}
		fmt.Fprintf(stderr, "  %-22s %.3f -> %.3f  ", label, t1.Baseline[i], t1.APV[i])
		printGain(stderr, t1.RelativeGainPercent[i])
	}
	fmt.Fprintln(stderr)
	_, _ = dim.Fprintln(stderr, "Summary (from results.json):")

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report.Summarize(r))
}

func printGain(w io.Writer, gain float64) {
	c := color.New(color.FgGreen)
	if gain <= 0 {
		c = color.New(color.FgRed)
	}
	_, _ = c.Fprintf(w, "%+.1f%%\n", gain)
}
