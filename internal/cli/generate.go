package cli

import (
	"context"
	"fmt"

	"github.com/ppiankov/refdocs/internal/pipeline"
	"github.com/ppiankov/refdocs/internal/worker"
	"github.com/spf13/cobra"
)

var (
	checkOnly bool
	jobs      int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [constants|defaults|errors|rpc|all]",
	Short: "Regenerate reference documents from source",
	Long: `Generate extracts reference data from the Rust sources and rewrites the
Markdown documents in the docs directory:

  constants  PROTOCOL_CONSTANTS.md from the consensus constants
  defaults   CONFIGURATION_DEFAULTS.md from default_* functions
  errors     ERROR_CODES.md from the RPC and consensus error enums
  rpc        RPC_METHODS.md from the registered RPC command list

With no argument (or "all") every document is generated in that order.
With --check nothing is written: each document is compared with the file on
disk, a unified diff is printed for stale ones, and the command fails if any
document is out of date.

Example:
  refdocs generate
  refdocs generate errors
  refdocs generate all --jobs 4
  refdocs generate --check`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"constants", "defaults", "errors", "rpc", "all"},
	RunE:      runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&checkOnly, "check", false, "compare with the files on disk instead of writing")
	generateCmd.Flags().IntVar(&jobs, "jobs", 0, "documents generated concurrently (default from config, 1)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kinds := pipeline.AllKinds()
	if len(args) == 1 && args[0] != "all" {
		kind, err := pipeline.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []pipeline.Kind{kind}
	}

	workers := cfg.Concurrency.Jobs
	if jobs > 0 {
		workers = jobs
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := pipeline.NewPipeline(cfg, cmdLogger())
	results := worker.NewBatchRunner(p, workers, cmdLogger()).Run(ctx, kinds, checkOnly)

	out := cmd.OutOrStdout()
	stale := 0
	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("generate %s: %w", r.Kind, r.Error)
		}
		res := r.Result
		switch {
		case !checkOnly:
			fmt.Fprintf(out, "✅ Generated: %s\n", res.Path)
			fmt.Fprintf(out, "   %s\n", res.Summary())
		case res.Stale:
			stale++
			fmt.Fprintf(out, "✗ Stale: %s\n", res.Path)
			fmt.Fprint(out, res.Diff)
		default:
			fmt.Fprintf(out, "✓ Up to date: %s\n", res.Path)
		}
		if n := len(res.Diagnostics); n > 0 {
			fmt.Fprintf(out, "   ⚠️  %d source diagnostics\n", n)
		}
	}

	if stale > 0 {
		return fmt.Errorf("%d of %d documents: %w", stale, len(results), pipeline.ErrStale)
	}
	return nil
}
