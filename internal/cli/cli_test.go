package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/revfix/internal/cli"
	"github.com/yaklabco/revfix/pkg/config"
	"github.com/yaklabco/revfix/pkg/review"
)

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "abc123", Date: "2026-01-01"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	assert.Equal(t, "revfix", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}

	for _, name := range []string{"review", "apply", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestReviewCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	reviewCmd, _, err := cmd.Find([]string{"review"})
	require.NoError(t, err)

	for _, flag := range []string{"output", "fail-on", "max-issues", "model"} {
		assert.NotNil(t, reviewCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Equal(t, "o", reviewCmd.Flags().Lookup("output").Shorthand)

	assert.Error(t, reviewCmd.Args(reviewCmd, nil), "review requires at least one file")
}

func TestApplyCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	applyCmd, _, err := cmd.Find([]string{"apply"})
	require.NoError(t, err)

	for _, flag := range []string{"dry-run", "yes", "backup"} {
		assert.NotNil(t, applyCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Equal(t, "n", applyCmd.Flags().Lookup("dry-run").Shorthand)
	assert.Equal(t, "y", applyCmd.Flags().Lookup("yes").Shorthand)

	assert.Error(t, applyCmd.Args(applyCmd, nil), "apply requires the issues file")
	assert.Error(t, applyCmd.Args(applyCmd, []string{"a", "b"}))
	assert.NoError(t, applyCmd.Args(applyCmd, []string{"issues.json"}))
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, ".revfix.yml")

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init", "-o", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider.Name)

	// Without --force a second init must refuse to clobber the file.
	cmd = cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init", "-o", out})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// With --force it overwrites.
	cmd = cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init", "-o", out, "--force"})
	assert.NoError(t, cmd.Execute())
}

func TestExitCodeFromIssues(t *testing.T) {
	t.Parallel()

	issues := []review.Issue{
		{Severity: review.SeverityWarning},
		{Severity: review.SeverityInfo},
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromIssues(nil, "error"))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromIssues(issues, "error"))
	assert.Equal(t, cli.ExitIssuesFound, cli.ExitCodeFromIssues(issues, "warning"))
	assert.Equal(t, cli.ExitIssuesFound, cli.ExitCodeFromIssues(issues, "info"))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromIssues(issues, "none"))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromIssues(issues, ""))
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"frobnicate"})
	assert.Error(t, cmd.Execute())
}
