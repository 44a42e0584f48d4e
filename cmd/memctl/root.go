package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/arena/alloc"
	"github.com/joshuapare/memkit/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	arenaSize  int
	layoutName string
	logFile    string
	logLevel   string

	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect a fixed-arena memory allocator",
	Long: `memctl drives a memkit allocator over a single fixed-size arena. It
runs operation scripts, replays a built-in self-check scenario, and prints the
block directory so splits, merges and fragmentation can be inspected.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Allocator config file (TOML)")
	rootCmd.PersistentFlags().IntVar(&arenaSize, "size", 0, "Arena size in bytes (overrides config)")
	rootCmd.PersistentFlags().
		StringVar(&layoutName, "layout", "", "Directory layout: split or conflated (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func setupLogger() error {
	opts := logger.Options{Level: logLevel, Filename: logFile}
	if logFile != "" {
		opts.Format = logger.FormatJSON
	}
	l, err := logger.New(opts)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// newAllocator builds an allocator from --config, then applies --size and
// --layout on top.
func newAllocator() (*alloc.Allocator, error) {
	cfg := alloc.DefaultConfig()
	if configPath != "" {
		loaded, err := alloc.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if arenaSize != 0 {
		cfg.ArenaSize = arenaSize
	}
	if layoutName != "" {
		cfg.Layout = alloc.Layout(layoutName)
	}
	cfg.Logger = log.Named("alloc")

	printVerbose("Arena: %d bytes, layout %s, region %s\n", cfg.ArenaSize, cfg.Layout, cfg.Region)
	return alloc.New(cfg)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
