package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/refdocs/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const configName = "refdocs"

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "refdocs",
	Short: "refdocs - reference documentation generated from source",
	Long: `refdocs keeps reference documentation in step with the code it describes.

It reads Rust sources from sibling repositories and regenerates Markdown
reference tables for protocol constants, configuration defaults, error codes
and RPC methods. It also builds the static HTML site and archives
documentation versions.

Sources that are missing are skipped; the generated files are always
rewritten so that a run never leaves stale tables behind.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./refdocs.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("root", "", "directory holding the source repositories (default: ..)")
	rootCmd.PersistentFlags().String("docs", "", "documentation directory (default: .)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("docs_dir", rootCmd.PersistentFlags().Lookup("docs"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	viper.SetConfigType("yaml")

	// Seed viper with every default key so that env overrides reach them
	defaults, err := yaml.Marshal(model.DefaultConfig())
	if err == nil {
		_ = viper.MergeConfig(bytes.NewReader(defaults))
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	// Read in environment variables that match REFDOCS_*
	viper.SetEnvPrefix("REFDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, merge it over the defaults
	if err := viper.MergeInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig returns the effective configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// empty flag values must not clear the defaults
	if cfg.Root == "" {
		cfg.Root = model.DefaultConfig().Root
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = model.DefaultConfig().DocsDir
	}
	return cfg, nil
}

// cmdLogger returns the command logger, falling back to a no-op logger
func cmdLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
