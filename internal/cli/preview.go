package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ppiankov/refdocs/internal/pipeline"
	"github.com/spf13/cobra"
)

var previewWidth int

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [kind|file]",
	Short: "Render a reference document in the terminal",
	Long: `Preview renders Markdown in the terminal.

Given a document kind (constants, defaults, errors, rpc) the document is
generated from source in memory, without touching the file on disk. Given a
path, that Markdown file is shown as it is. The default is constants.

Example:
  refdocs preview errors
  refdocs preview PROTOCOL_CONSTANTS.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "word wrap width")
}

func runPreview(cmd *cobra.Command, args []string) error {
	target := string(pipeline.KindConstants)
	if len(args) == 1 {
		target = args[0]
	}

	markdown, err := previewSource(cmd, target)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}

func previewSource(cmd *cobra.Command, target string) (string, error) {
	kind, kindErr := pipeline.ParseKind(target)
	if kindErr != nil {
		data, err := os.ReadFile(target)
		if err != nil {
			return "", fmt.Errorf("%q is neither a document kind nor a readable file: %w", target, err)
		}
		return string(data), nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return pipeline.NewPipeline(cfg, cmdLogger()).Render(ctx, kind)
}
