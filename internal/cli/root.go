// Package cli implements the Cobra command hierarchy for the organizer CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling.
package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/config"
	"github.com/localorganizer/organizer/internal/core"
)

// globalFlagValues holds the parsed persistent flag values, shared by every
// subcommand.
type globalFlagValues struct {
	Root       string
	Output     string
	LogFormat  string
	Verbose    bool
	Quiet      bool
	ConfigFile string
}

var flagValues globalFlagValues

var rootCmd = &cobra.Command{
	Use:   "organizer",
	Short: "Classify and organize files with rules and a local LLM.",
	Long: `organizer scans a directory tree, classifies each file into one of a
fixed set of categories using a closed rule table (and, optionally, a local
LLM for files no rule matches), produces a reviewable plan, and executes
that plan as filesystem moves or copies. Nothing is deleted, and nothing
is overwritten.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := config.ResolveLogLevel(flagValues.Verbose, flagValues.Quiet)
		format := flagValues.LogFormat
		if format == "" {
			format = config.ResolveLogFormat()
		}
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagValues.Root, "root", ".", "directory to scan")
	rootCmd.PersistentFlags().StringVar(&flagValues.Output, "output", "./organized", "destination base directory for organized files, and where plan/log artifacts are written")
	rootCmd.PersistentFlags().StringVar(&flagValues.LogFormat, "log-format", "", "log output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&flagValues.Verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagValues.Quiet, "quiet", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&flagValues.ConfigFile, "config", "", "path to a TOML backend config file")
}

// Execute runs the root command and returns an appropriate exit code. If the
// error is a *core.OrganizerError, its Code is used. Generic errors return
// ExitFatal (2). Nil returns ExitSuccess (0).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(core.ExitSuccess)
}

// extractExitCode determines the process exit code from an error. If the
// error is a *core.OrganizerError, its Code field is used. Otherwise,
// ExitFatal (2) is returned for any non-nil error.
func extractExitCode(err error) int {
	if err == nil {
		return int(core.ExitSuccess)
	}
	var orgErr *core.OrganizerError
	if errors.As(err, &orgErr) {
		return int(orgErr.Code)
	}
	return int(core.ExitFatal)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// resolveBackendConfig loads flagValues.ConfigFile (if set), merges it over
// the package defaults and the detected hardware tier, and returns the
// result. The scan, plan and info subcommands call this once from RunE.
func resolveBackendConfig(cmd *cobra.Command) (config.BackendConfig, error) {
	override := config.DefaultBackendConfig()
	if flagValues.ConfigFile != "" {
		fromFile, err := config.LoadFromFile(flagValues.ConfigFile)
		if err != nil {
			return config.BackendConfig{}, core.NewFatalError("load config file", err)
		}
		override = fromFile
	}

	merged, err := config.Merge(cmd.Context(), override)
	if err != nil {
		return config.BackendConfig{}, core.NewFatalError("merge config", err)
	}
	return *merged, nil
}
