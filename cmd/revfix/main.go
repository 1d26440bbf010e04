// Package main is the entry point for the revfix CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/revfix/internal/cli"
	"github.com/yaklabco/revfix/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, cli.ErrIssuesFound):
			// Just a signal for the exit code.
			return cli.ExitIssuesFound
		case errors.Is(err, cli.ErrFixesFailed):
			return cli.ExitFixesFailed
		default:
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
			return cli.ExitInternalError
		}
	}

	return cli.ExitSuccess
}
