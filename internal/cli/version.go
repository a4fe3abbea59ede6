package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/refdocs/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show and manage the documentation version",
	Long: `Print the current documentation version from the VERSION file.

Subcommands archive the current documents, list archived versions and
update the version markers in INDEX.md and README.md.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		v, err := version.Read(cfg.DocsPath(cfg.Version.File))
		if errors.Is(err, version.ErrNoVersion) {
			v = "unknown"
		} else if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Current version: %s\n", v)
		return nil
	},
}

var versionArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the current documentation under archive/versions/vX.Y",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		v, err := version.Read(cfg.DocsPath(cfg.Version.File))
		if err != nil {
			return err
		}

		archiver, err := version.NewArchiver(cfg.DocsPath("."), cfg.DocsPath(cfg.Version.ArchiveDir), cfg.Version.Exclude, cmdLogger())
		if err != nil {
			return err
		}
		res, err := archiver.Archive(v)
		if errors.Is(err, version.ErrArchiveExists) {
			// an existing archive is left as it is
			major, _ := version.MajorMinor(v)
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Archive for v%s already exists\n", major)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Archived v%s to %s (%d items)\n", res.Version, res.Path, res.Items)
		return nil
	},
}

var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived documentation versions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		current, err := version.Read(cfg.DocsPath(cfg.Version.File))
		if err != nil && !errors.Is(err, version.ErrNoVersion) {
			return err
		}
		archived, err := version.List(cfg.DocsPath(cfg.Version.ArchiveDir))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if current != "" {
			fmt.Fprintf(out, "Current version: %s\n", current)
		}
		if len(archived) == 0 {
			fmt.Fprintln(out, "No archived versions")
			return nil
		}
		fmt.Fprintf(out, "Archived versions: %s\n", strings.Join(archived, ", "))
		return nil
	},
}

var versionSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update version markers in INDEX.md and README.md",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		v, err := version.Read(cfg.DocsPath(cfg.Version.File))
		if err != nil {
			return err
		}
		updated, err := version.Sync(cfg.DocsPath("."), cfg.Version.Product, v)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(updated) == 0 {
			fmt.Fprintf(out, "ℹ️  Version %s already up to date in documentation\n", v)
			return nil
		}
		fmt.Fprintf(out, "✅ Updated version to %s in: %s\n", v, strings.Join(updated, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.AddCommand(versionArchiveCmd)
	versionCmd.AddCommand(versionListCmd)
	versionCmd.AddCommand(versionSyncCmd)
}
