// Package main provides the CLI entrypoint for monset.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monset/monset/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		setupDir   string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "monset",
	Short: "EDID-keyed monitor layout daemon for X11",
	Long: `monset keeps a multi-monitor layout consistent across hotplug and
dock events. Monitors are identified by their EDID rather than by the
connector they are plugged into, so docks that shuffle connector names
between replugs still end up with the layout you declared.

Declare one TOML file per arrangement ("setup") in the setup directory,
each listing the monitors it covers:

    [[monitor]]
    id = "7f4932e1"   # from 'monset monitors'
    x = 0
    y = 0
    rotate = 0

The first setup whose monitors are all connected wins. When nothing
matches, every connected monitor is mirrored at 0x0.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/monset/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.setupDir, "setup-dir", "",
		"Path to setup dir (default: ~/.config/monset/setups.d)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := cfg.Level()
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// setupDir resolves the setup directory: flag, then config, then default.
func setupDir() string {
	if globalOpts.setupDir != "" {
		return globalOpts.setupDir
	}
	if cfg.SetupDir != "" {
		return cfg.SetupDir
	}
	return config.DefaultSetupDir()
}
