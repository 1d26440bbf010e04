package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/revfix/pkg/apply"
	"github.com/yaklabco/revfix/pkg/review"
)

// FormatReviewSummary formats review results as a single line.
// Example: "5 issues (2 errors, 3 warnings) in 2 files, 3 fixable".
func (s *Styles) FormatReviewSummary(issues []review.Issue) string {
	if len(issues) == 0 {
		return s.Success.Render("No issues found") + "\n"
	}

	counts := review.CountBySeverity(issues)

	var severityParts []string
	if n := counts[review.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := counts[review.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := counts[review.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	files := make(map[string]bool)
	fixable := 0
	for i := range issues {
		files[issues[i].File] = true
		if issues[i].SuggestedFix.Appliable() {
			fixable++
		}
	}

	issueWord := "issues"
	if len(issues) == 1 {
		issueWord = "issue"
	}
	fileWord := "files"
	if len(files) == 1 {
		fileWord = "file"
	}

	parts := []string{
		fmt.Sprintf("%d %s (%s)", len(issues), issueWord, strings.Join(severityParts, ", ")),
		fmt.Sprintf("in %d %s", len(files), fileWord),
	}
	if fixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", fixable)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatBatchSummary formats the outcome of a batch fix application.
func (s *Styles) FormatBatchSummary(batch apply.BatchResult) string {
	var builder strings.Builder

	if batch.AllSucceeded() {
		builder.WriteString(s.Success.Render(fmt.Sprintf("Applied %d of %d fixes", batch.Succeeded, batch.Total())))
		builder.WriteString("\n")
		return builder.String()
	}

	builder.WriteString(s.Failure.Render(fmt.Sprintf("Applied %d of %d fixes, %d failed",
		batch.Succeeded, batch.Total(), batch.Failed)))
	builder.WriteString("\n")
	for _, msg := range batch.Errors {
		builder.WriteString("  " + s.Dim.Render(msg) + "\n")
	}

	return builder.String()
}
