package model

import "path/filepath"

// Config is the complete refdocs configuration. Paths are relative to Root
// (source repositories) or DocsDir (generated documents and site).
type Config struct {
	Root    string `yaml:"root" mapstructure:"root"`         // Directory holding the sibling source repositories
	DocsDir string `yaml:"docs_dir" mapstructure:"docs_dir"` // Documentation repository root

	Constants   ConstantsConfig   `yaml:"constants" mapstructure:"constants"`
	Defaults    DefaultsConfig    `yaml:"defaults" mapstructure:"defaults"`
	Errors      ErrorsConfig      `yaml:"errors" mapstructure:"errors"`
	RPC         RPCConfig         `yaml:"rpc" mapstructure:"rpc"`
	Site        SiteConfig        `yaml:"site" mapstructure:"site"`
	Version     VersionConfig     `yaml:"version" mapstructure:"version"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ConstantsConfig locates the protocol constants source
type ConstantsConfig struct {
	Source    string `yaml:"source" mapstructure:"source"`
	Output    string `yaml:"output" mapstructure:"output"`
	Component string `yaml:"component" mapstructure:"component"` // Shown in the document intro
}

// DefaultsSource is one file scanned for default-value functions
type DefaultsSource struct {
	Title   string `yaml:"title" mapstructure:"title"`
	Path    string `yaml:"path" mapstructure:"path"`
	Grouped bool   `yaml:"grouped" mapstructure:"grouped"` // Split the section into category subsections
}

// DefaultsConfig configures the configuration-defaults document
type DefaultsConfig struct {
	Output  string           `yaml:"output" mapstructure:"output"`
	Prefix  string           `yaml:"prefix" mapstructure:"prefix"`
	Skip    []string         `yaml:"skip" mapstructure:"skip"`
	Sources []DefaultsSource `yaml:"sources" mapstructure:"sources"`
}

// RPCErrorsConfig locates the RPC error enum and its dispatch functions
type RPCErrorsConfig struct {
	Source string   `yaml:"source" mapstructure:"source"`
	Enum   string   `yaml:"enum" mapstructure:"enum"`
	Skip   []string `yaml:"skip" mapstructure:"skip"` // Variants already covered by the standard table
}

// ConsensusErrorsConfig locates the consensus error enum
type ConsensusErrorsConfig struct {
	Source string `yaml:"source" mapstructure:"source"`
	Enum   string `yaml:"enum" mapstructure:"enum"`
}

// ErrorsConfig configures the error-code document
type ErrorsConfig struct {
	Output    string                `yaml:"output" mapstructure:"output"`
	RPC       RPCErrorsConfig       `yaml:"rpc" mapstructure:"rpc"`
	Consensus ConsensusErrorsConfig `yaml:"consensus" mapstructure:"consensus"`
}

// RPCConfig configures the RPC-method document
type RPCConfig struct {
	Source    string `yaml:"source" mapstructure:"source"`
	Array     string `yaml:"array" mapstructure:"array"` // Name of the constant listing registered methods
	Output    string `yaml:"output" mapstructure:"output"`
	Reference string `yaml:"reference" mapstructure:"reference"` // Link to the hand-written RPC reference
}

// NavItem is one sidebar entry of the HTML site
type NavItem struct {
	Title string `yaml:"title" mapstructure:"title"`
	Href  string `yaml:"href" mapstructure:"href"`
}

// SiteConfig configures the HTML site builder
type SiteConfig struct {
	BuildDir   string    `yaml:"build_dir" mapstructure:"build_dir"`
	Title      string    `yaml:"title" mapstructure:"title"`
	Stylesheet string    `yaml:"stylesheet" mapstructure:"stylesheet"` // Relative to DocsDir
	Skip       []string  `yaml:"skip" mapstructure:"skip"`
	Nav        []NavItem `yaml:"nav" mapstructure:"nav"`
	Disallow   []string  `yaml:"disallow" mapstructure:"disallow"` // robots.txt disallowed prefixes
}

// VersionConfig configures version archiving
type VersionConfig struct {
	File       string   `yaml:"file" mapstructure:"file"`
	ArchiveDir string   `yaml:"archive_dir" mapstructure:"archive_dir"`
	Exclude    []string `yaml:"exclude" mapstructure:"exclude"` // Glob patterns never archived
	Product    string   `yaml:"product" mapstructure:"product"`
}

// ConcurrencyConfig controls parallel generation
type ConcurrencyConfig struct {
	Jobs int `yaml:"jobs" mapstructure:"jobs"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the layout of the documentation repository checked
// out next to its source repositories
func DefaultConfig() *Config {
	return &Config{
		Root:    "..",
		DocsDir: ".",
		Constants: ConstantsConfig{
			Source:    "bllvm-consensus/src/constants.rs",
			Output:    "PROTOCOL_CONSTANTS.md",
			Component: "bllvm-consensus",
		},
		Defaults: DefaultsConfig{
			Output: "CONFIGURATION_DEFAULTS.md",
			Prefix: "default_",
			Skip:   []string{"default_true", "default_false", "default_zero"},
			Sources: []DefaultsSource{
				{Title: "bllvm-node", Path: "bllvm-node/src/config/mod.rs", Grouped: true},
				{Title: "bllvm-commons", Path: "bllvm-commons/bllvm-commons/src/config.rs"},
			},
		},
		Errors: ErrorsConfig{
			Output: "ERROR_CODES.md",
			RPC: RPCErrorsConfig{
				Source: "bllvm-node/src/rpc/errors.rs",
				Enum:   "RpcErrorCode",
				Skip:   []string{"ParseError", "InvalidRequest", "MethodNotFound"},
			},
			Consensus: ConsensusErrorsConfig{
				Source: "bllvm-consensus/src/error.rs",
				Enum:   "ConsensusError",
			},
		},
		RPC: RPCConfig{
			Source:    "bllvm-node/src/rpc/control.rs",
			Array:     "ACTIVE_COMMANDS",
			Output:    "RPC_METHODS.md",
			Reference: "../bllvm-node/docs/RPC_REFERENCE.md",
		},
		Site: SiteConfig{
			BuildDir:   "docs",
			Title:      "Bitcoin Commons Documentation",
			Stylesheet: "docs/assets/css/style.css",
			Skip:       []string{"README.md"},
			Nav: []NavItem{
				{Title: "Home", Href: "index.html"},
				{Title: "Quick Start", Href: "QUICK_START.html"},
				{Title: "Architecture", Href: "ARCHITECTURE.html"},
				{Title: "Integration", Href: "INTEGRATION.html"},
				{Title: "Configuration", Href: "CONFIGURATION.html"},
				{Title: "Troubleshooting", Href: "TROUBLESHOOTING.html"},
				{Title: "Performance Tuning", Href: "PERFORMANCE_TUNING.html"},
				{Title: "Best Practices", Href: "BEST_PRACTICES.html"},
				{Title: "Configuration Defaults", Href: "CONFIGURATION_DEFAULTS.html"},
				{Title: "Protocol Constants", Href: "PROTOCOL_CONSTANTS.html"},
				{Title: "RPC Methods", Href: "RPC_METHODS.html"},
				{Title: "Error Codes", Href: "ERROR_CODES.html"},
			},
			Disallow: []string{"/archive/"},
		},
		Version: VersionConfig{
			File:       "VERSION",
			ArchiveDir: "archive/versions",
			Exclude:    []string{".git", ".github", "archive", "tools", "VERSION", ".nojekyll", "node_modules", ".DS_Store"},
			Product:    "BLLVM",
		},
		Concurrency: ConcurrencyConfig{Jobs: 1},
	}
}

// SourcePath resolves a source-relative path against Root
func (c *Config) SourcePath(rel string) string {
	return filepath.Join(c.Root, rel)
}

// DocsPath resolves a docs-relative path against DocsDir
func (c *Config) DocsPath(rel string) string {
	return filepath.Join(c.DocsDir, rel)
}
