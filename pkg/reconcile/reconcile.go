// Package reconcile corrects possibly-wrong AI-reported line numbers using
// the expected code snippet attached to each issue.
//
// Reconciliation is best-effort, not authoritative: a snippet that cannot
// be located anywhere leaves the claimed line untouched, and that is a
// valid terminal state rather than an error.
package reconcile

import (
	"strings"

	"github.com/yaklabco/revfix/pkg/fix"
	"github.com/yaklabco/revfix/pkg/review"
)

// minSnippetLen is the shortest trimmed snippet worth matching. Anything
// shorter (a brace, a keyword fragment) recurs too often to disambiguate.
const minSnippetLen = 5

// Outcome describes what reconciliation did to an issue's line.
type Outcome int

const (
	// Skipped means the issue carried no snippet, or one too short to match.
	Skipped Outcome = iota

	// Confirmed means the claimed line already contains the snippet.
	Confirmed

	// Corrected means the line was moved to the first line containing the
	// snippet.
	Corrected

	// Miss means no line contains the snippet; the claimed line stands.
	Miss
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Corrected:
		return "corrected"
	case Miss:
		return "miss"
	default:
		return "skipped"
	}
}

// Reconcile verifies issue.Line against the document's current content and
// corrects it when the expected snippet is found elsewhere. It mutates only
// issue.Line, and only for a Corrected outcome, so running it twice yields
// the same result.
//
// Matching is substring containment over whitespace-trimmed lines. When the
// snippet occurs on several lines, the earliest wins; ties are not
// disambiguated further.
func Reconcile(issue *review.Issue, content []byte) Outcome {
	snippet := strings.TrimSpace(issue.CodeSnippet)
	if len(snippet) <= minSnippetLen {
		return Skipped
	}

	lines := fix.SplitLines(content)

	// The claimed line, or empty when out of bounds.
	var claimed string
	if issue.Line >= 1 && issue.Line <= len(lines) {
		claimed = lines[issue.Line-1]
	}
	if strings.Contains(strings.TrimSpace(claimed), snippet) {
		return Confirmed
	}

	for i, line := range lines {
		if strings.Contains(strings.TrimSpace(line), snippet) {
			issue.Line = i + 1
			return Corrected
		}
	}

	return Miss
}

// ReconcileAll runs Reconcile over every issue against its own document
// content, supplied by read. Issues whose document cannot be read are left
// untouched; per the best-effort contract, a failed read is a Miss, not an
// error.
func ReconcileAll(issues []review.Issue, read func(path string) ([]byte, error)) map[Outcome]int {
	counts := make(map[Outcome]int, 4)
	for i := range issues {
		content, err := read(issues[i].File)
		if err != nil {
			counts[Miss]++
			continue
		}
		counts[Reconcile(&issues[i], content)]++
	}
	return counts
}
