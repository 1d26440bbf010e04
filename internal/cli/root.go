// Package cli provides the Cobra command structure for revfix.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/revfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root revfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "revfix",
		Short: "Make AI code review issues trustworthy and mechanically actionable",
		Long: `revfix reviews source files with an AI model and turns the result into
something you can trust: every reported line number is reconciled against
the live file content, and structured fixes are validated, previewed, and
applied atomically with per-fix failure isolation.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newReviewCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
