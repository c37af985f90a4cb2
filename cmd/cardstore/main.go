// Package main provides the cardstore CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/conorfennell/cardstore/internal/command"
	"github.com/conorfennell/cardstore/internal/config"
	"github.com/spf13/cobra"
)

// svc is built from the loaded configuration before any subcommand runs.
var svc *command.Service

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardstore",
	Short: "Flashcard collections with JSON import and export",
	Long: `cardstore keeps question/answer cards in collections and
sub-collections backed by SQLite, and moves them between stores as JSON.

All commands print JSON on stdout; errors are printed as {"error": "..."}.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// setup loads the configuration, installs the logger and builds the service.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))
	slog.Debug("configuration loaded", "db_path", cfg.DBPath)
	svc = command.New(cfg)
	return nil
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func exitWithError(err error) {
	if jsonErr := outputJSON(ErrorResponse{Error: err.Error()}); jsonErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(exitCode(err))
}
