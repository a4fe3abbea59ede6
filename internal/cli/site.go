package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/refdocs/internal/site"
	"github.com/spf13/cobra"
)

var watchSite bool

// siteCmd represents the site command
var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Build the HTML documentation site",
}

var siteBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Convert the Markdown documents into HTML pages",
	Long: `Build writes one HTML page per Markdown document in the docs directory
(files starting with "_" and README.md are skipped). INDEX.md also becomes
index.html. Pages load their Markdown client side, so the sources, the
stylesheet and VERSION are copied next to them. A robots.txt is written and
sidebar links without a page are reported.

With --watch the site is rebuilt whenever a document or the stylesheet
changes, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runSiteBuild,
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteBuildCmd)

	siteBuildCmd.Flags().BoolVarP(&watchSite, "watch", "w", false, "rebuild on changes")
}

func runSiteBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	builder := site.NewBuilder(cfg, cmdLogger())
	res, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	printBuild(cmd, res)

	if !watchSite {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\n👀 Watching %s for changes (Ctrl+C to stop)\n", cfg.DocsPath("."))
	return builder.Watch(ctx, site.DefaultDebounce, func(res *site.BuildResult) {
		printBuild(cmd, res)
	})
}

func printBuild(cmd *cobra.Command, res *site.BuildResult) {
	out := cmd.OutOrStdout()
	for _, page := range res.Pages {
		fmt.Fprintf(out, "✅ Built %s\n", page)
	}
	for _, href := range res.Dangling {
		fmt.Fprintf(out, "⚠️  Navigation entry without a page: %s\n", href)
	}
	fmt.Fprintf(out, "\n✅ Documentation built in %s\n", res.Dir)
}
