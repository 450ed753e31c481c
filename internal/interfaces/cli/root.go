// Package cli implements the taxview command-line interface.  Subcommands
// operate directly on the dataset directory; no running server is required.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrabowski5/TaxonomyViewing/internal/config"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	Output     string // "json" | "table"
}

// NewRootCommand builds the taxview root command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:           "taxview",
		Short:         "Cross-taxonomy classification resolver",
		Long:          "taxview resolves product and trade classification codes across taxonomies\n(HS, CN, HTS, CA, CPC, NAICS and the combined goods-and-services tree).",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flags.StringVar(&opts.DataDir, "data-dir", "", "dataset directory (overrides config)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	flags.StringVarP(&opts.Output, "output", "o", "table", "output format: json|table")

	root.AddCommand(
		newServeCommand(opts),
		newMapCommand(opts),
		newValidateCommand(opts),
		newFuzzygenCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration with flag overrides applied.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(opts.ConfigPath)
	}
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg, nil
}

// newLogger builds the CLI logger from resolved configuration.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
