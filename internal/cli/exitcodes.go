package cli

import "github.com/yaklabco/revfix/pkg/review"

// Exit codes for revfix.
const (
	// ExitSuccess indicates successful execution with no issues at or
	// above the fail-on threshold.
	ExitSuccess = 0

	// ExitIssuesFound indicates issues at or above the threshold remain.
	ExitIssuesFound = 1

	// ExitFixesFailed indicates one or more fixes failed to apply.
	ExitFixesFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromIssues determines the exit code from remaining issues and the
// configured fail-on threshold.
func ExitCodeFromIssues(issues []review.Issue, failOn string) int {
	for i := range issues {
		if issues[i].Severity.MeetsThreshold(failOn) {
			return ExitIssuesFound
		}
	}
	return ExitSuccess
}
