// Package main is the entry point for the triangulator binary.
// It serves the triangulation API and offers offline codec tools.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"triangulator/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command with every subcommand attached
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "triangulator",
		Short: "Delaunay triangulation service",
		Long: `Triangulator computes Delaunay triangulations of 2D point sets.

"serve" runs the HTTP API. The other commands work on files, reading
binary point sets or JSON/YAML documents and writing meshes.

Example:
  triangulator serve --addr :8080 --provider http --base-url http://psm:8000
  triangulator triangulate points.bin --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(
		newServeCmd(),
		newTriangulateCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newRenderCmd(),
	)

	return rootCmd
}

// loadConfig reads the config file named by --config, or searches the
// default locations, and applies persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, path, err = config.LoadFromPath(path)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Logging.Format = config.ParseLogFormat(v)
	}
	return cfg, path, nil
}

// newLogger builds the process logger and installs it as the default
func newLogger(cfg *config.Config) *slog.Logger {
	logger := cfg.Logging.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	return logger
}
