package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/revfix/pkg/review"
)

// FormatIssue formats a single review issue for terminal output.
func (s *Styles) FormatIssue(issue *review.Issue) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(issue.File), issue.Line)
	severity := s.FormatSeverity(issue.Severity)

	category := ""
	if issue.Category != "" {
		category = "  " + s.Category.Render("("+string(issue.Category)+")")
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s%s\n",
		location, severity, s.Message.Render(issue.Message), category))

	if issue.CodeSnippet != "" {
		builder.WriteString("        " + s.SourceLine.Render(strings.TrimSpace(issue.CodeSnippet)) + "\n")
	}

	if fix := issue.SuggestedFix; fix != nil {
		switch {
		case fix.Appliable():
			label := fix.Fix.Description
			if label == "" {
				label = fmt.Sprintf("%s lines %d-%d", fix.Fix.Type, fix.Fix.StartLine, fix.Fix.EndLine)
			}
			builder.WriteString("    " + s.Dim.Render("Fix available:") + " " +
				s.Suggestion.Render(label) + "\n")
		case fix.Text != "":
			builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
				s.Suggestion.Render(fix.Text) + "\n")
		}
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev review.Severity) string {
	switch sev {
	case review.SeverityError:
		return s.Error.Render("error")
	case review.SeverityWarning:
		return s.Warning.Render("warning")
	case review.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
