package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/revfix/internal/configloader"
	"github.com/yaklabco/revfix/internal/logging"
	"github.com/yaklabco/revfix/internal/ui/pretty"
	"github.com/yaklabco/revfix/pkg/config"
	"github.com/yaklabco/revfix/pkg/provider"
	"github.com/yaklabco/revfix/pkg/reconcile"
	"github.com/yaklabco/revfix/pkg/review"
)

// ErrIssuesFound signals the exit-code path without producing an error log.
var ErrIssuesFound = errors.New("review issues found")

type reviewFlags struct {
	output    string
	failOn    string
	maxIssues int
	model     string
}

func newReviewCommand() *cobra.Command {
	flags := &reviewFlags{}

	cmd := &cobra.Command{
		Use:   "review <files...>",
		Short: "Review source files with an AI model",
		Long: `Review source files with an AI model and print reconciled issues.

Every issue's line number is verified against the live file content using
the code snippet the model reported; hallucinated or diff-relative line
numbers are corrected to the first matching line.

Examples:
  revfix review main.go              Review one file
  revfix review pkg/*.go             Review several files
  revfix review -o issues.json ...   Save issues for 'revfix apply'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write issues as JSON to this path")
	cmd.Flags().StringVar(&flags.failOn, "fail-on", "", "exit non-zero at this severity: error, warning, info, none")
	cmd.Flags().IntVar(&flags.maxIssues, "max-issues", 0, "keep at most this many issues")
	cmd.Flags().StringVar(&flags.model, "model", "", "override the configured model")

	return cmd
}

func runReview(cmd *cobra.Command, args []string, flags *reviewFlags) error {
	logger := logging.Default()
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.failOn != "" {
		cfg.FailOn = flags.failOn
	}
	if flags.maxIssues > 0 {
		cfg.MaxIssues = flags.maxIssues
	}
	if flags.model != "" {
		cfg.Provider.Model = flags.model
	}

	prov, err := provider.New(cfg.Provider.Name, cfg.Provider.Model, cfg.Provider.BaseURL)
	if err != nil {
		return err
	}

	logger.Debug("starting review",
		logging.FieldProvider, cfg.Provider.Name,
		logging.FieldModel, cfg.Provider.Model,
		logging.FieldFiles, len(args),
	)

	paths := filterIgnored(args, cfg.Ignore)
	inputs, skipped := review.CollectInputs(os.ReadFile, paths)
	for path, reason := range skipped {
		logger.Debug("skipping file", logging.FieldPath, path, logging.FieldReason, reason)
	}
	if len(inputs) == 0 {
		return errors.New("no reviewable files")
	}

	engine := &review.Engine{
		Provider:     prov,
		ReadDocument: os.ReadFile,
		MaxIssues:    cfg.MaxIssues,
	}

	result, err := engine.Review(ctx, inputs)
	if err != nil {
		return err
	}

	logger.Debug("review complete",
		logging.FieldIssues, len(result.Issues),
		logging.FieldCorrected, result.Reconciled[reconcile.Corrected],
		logging.FieldTokens, result.TokensUsed,
	)

	styles := pretty.NewStyles(colorEnabled(cmd))
	renderIssues(styles, result.Issues)
	fmt.Print(styles.FormatReviewSummary(result.Issues))

	if flags.output != "" {
		if err := writeIssues(flags.output, result.Issues); err != nil {
			return err
		}
		logger.Info("issues written", logging.FieldPath, flags.output)
	}

	if ExitCodeFromIssues(result.Issues, cfg.FailOn) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}

// renderIssues prints issues grouped by file, in file order.
func renderIssues(styles *pretty.Styles, issues []review.Issue) {
	byFile := make(map[string][]*review.Issue)
	var files []string
	for i := range issues {
		path := issues[i].File
		if _, seen := byFile[path]; !seen {
			files = append(files, path)
		}
		byFile[path] = append(byFile[path], &issues[i])
	}
	sort.Strings(files)

	for _, path := range files {
		group := byFile[path]
		fmt.Println(styles.FormatFileHeader(path, len(group)))
		for _, issue := range group {
			fmt.Print(styles.FormatIssue(issue))
		}
		fmt.Println()
	}
}

func writeIssues(path string, issues []review.Issue) error {
	payload := struct {
		Issues []review.Issue `json:"issues"`
	}{Issues: issues}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func filterIgnored(paths, ignore []string) []string {
	if len(ignore) == 0 {
		return paths
	}
	kept := paths[:0:0]
	for _, path := range paths {
		if matchesAny(path, ignore) {
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// loadConfig resolves configuration using the root --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.IsColorEnabled(mode, os.Stdout)
}
