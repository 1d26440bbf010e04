package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/revfix/internal/logging"
	"github.com/yaklabco/revfix/internal/ui/pretty"
	"github.com/yaklabco/revfix/pkg/apply"
	"github.com/yaklabco/revfix/pkg/fix"
	"github.com/yaklabco/revfix/pkg/review"
)

// ErrFixesFailed signals the exit-code path when any fix failed to apply.
var ErrFixesFailed = errors.New("some fixes failed")

type applyFlags struct {
	dryRun bool
	yes    bool
	backup bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <issues.json>",
		Short: "Apply structured fixes from a saved review",
		Long: `Apply the structured fixes from a review saved with 'revfix review -o'.

Each fix is validated against the file's current line count, previewed as a
unified diff, and confirmed before anything is written. Writes are atomic,
refuse to clobber files modified since they were read, and one fix's
failure never aborts the rest.

Examples:
  revfix apply issues.json            Confirm and apply each fix
  revfix apply --dry-run issues.json  Show diffs without writing
  revfix apply --yes issues.json      Apply everything without prompting
  revfix apply --backup issues.json   Keep .revfix.orig sidecar backups`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show fixes without applying them")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "apply all fixes without confirmation")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "create sidecar backups before writing")

	return cmd
}

func runApply(cmd *cobra.Command, issuesPath string, flags *applyFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()
	styles := pretty.NewStyles(colorEnabled(cmd))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	backup := flags.backup || cfg.Backup

	issues, err := readIssues(issuesPath)
	if err != nil {
		return err
	}

	appliable := make([]*review.Issue, 0, len(issues))
	for i := range issues {
		if issues[i].HasAppliableFix() {
			appliable = append(appliable, &issues[i])
		}
	}
	if len(appliable) == 0 {
		logger.Info("no appliable fixes", logging.FieldIssues, len(issues))
		return nil
	}

	logger.Debug("applying fixes",
		logging.FieldIssues, len(appliable),
		logging.FieldDryRun, flags.dryRun,
		logging.FieldBackup, backup,
	)

	if flags.dryRun {
		return dryRun(styles, appliable)
	}

	applier := apply.New(apply.NewFSStore(backup))
	if !flags.yes {
		applier.Confirm = promptConfirm(styles)
	}

	var batch apply.BatchResult
	if flags.yes {
		batch = applier.ApplyAll(ctx, appliable)
	} else {
		// Interactive mode keeps the same isolation semantics, but routes
		// each fix through the confirmation prompt.
		for _, issue := range appliable {
			result := applier.Apply(ctx, issue)
			if result.Success {
				batch.Succeeded++
				continue
			}
			batch.Failed++
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("%s: %s", issue.Location(), result.Error))
		}
	}

	fmt.Print(styles.FormatBatchSummary(batch))

	if err := writeIssues(issuesPath, issues); err != nil {
		logger.Warn("could not update issue statuses", logging.FieldError, err)
	}

	if !batch.AllSucceeded() {
		return ErrFixesFailed
	}
	return nil
}

// dryRun renders the diff of every fix without touching any file.
func dryRun(styles *pretty.Styles, issues []*review.Issue) error {
	width := pretty.TerminalWidth(os.Stdout)

	for _, issue := range issues {
		original, err := os.ReadFile(issue.File)
		if err != nil {
			fmt.Println(styles.Failure.Render(fmt.Sprintf("%s: %v", issue.Location(), err)))
			continue
		}

		content, err := fix.BuildPreview(original, *issue.SuggestedFix.Fix)
		if err != nil {
			fmt.Println(styles.Failure.Render(fmt.Sprintf("%s: %v", issue.Location(), err)))
			continue
		}

		if d := fix.NewDiff(issue.File, original, content); d.HasChanges() {
			fmt.Print(styles.FormatDiff(d, width))
			fmt.Println()
		}
	}

	return nil
}

// promptConfirm renders the preview diff and asks on stdin.
func promptConfirm(styles *pretty.Styles) apply.ConfirmFunc {
	reader := bufio.NewReader(os.Stdin)
	width := pretty.TerminalWidth(os.Stdout)

	return func(_ context.Context, p *apply.Preview) (bool, error) {
		if p.Fix.Description != "" {
			fmt.Println(styles.Bold.Render(p.Fix.Description))
		}
		fmt.Print(styles.FormatDiff(p.Diff, width))
		fmt.Print("Apply this fix? [y/N] ")

		answer, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}
}

func readIssues(path string) ([]review.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var payload struct {
		Issues []review.Issue `json:"issues"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return payload.Issues, nil
}
