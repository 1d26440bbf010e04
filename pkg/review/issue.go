// Package review defines the core data model for AI code review issues
// and their structured fixes.
package review

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a review issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a numeric rank for sorting and threshold checks (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if the severity is at or above the threshold.
// An empty or "none" threshold never matches.
func (s Severity) MeetsThreshold(threshold string) bool {
	if threshold == "" || threshold == "none" {
		return false
	}
	return s.Rank() >= Severity(threshold).Rank()
}

// ParseSeverity normalizes a severity string, defaulting to warning.
func ParseSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error", "high", "critical":
		return SeverityError
	case "info", "low", "note":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// Category classifies the kind of problem an issue reports.
type Category string

const (
	CategoryBug             Category = "bug"
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryStyle           Category = "style"
	CategoryMaintainability Category = "maintainability"
)

// FixStatus tracks the lifecycle of an issue's fix.
type FixStatus string

const (
	FixPending   FixStatus = "pending"
	FixApplied   FixStatus = "applied"
	FixDismissed FixStatus = "dismissed"
	FixFailed    FixStatus = "failed"
)

// FixType is the operation a CodeFix performs on a line range.
type FixType string

const (
	FixReplace FixType = "replace"
	FixInsert  FixType = "insert"
	FixDelete  FixType = "delete"
)

// IsValid returns true for a known fix type.
func (t FixType) IsValid() bool {
	switch t {
	case FixReplace, FixInsert, FixDelete:
		return true
	default:
		return false
	}
}

// CodeFix is a structured, machine-appliable patch over a line range.
//
// StartLine and EndLine are 1-based and inclusive, and refer to the current
// line numbering of the target file. For insert fixes, EndLine is ignored:
// the insertion point is the start of StartLine.
type CodeFix struct {
	Type        FixType `json:"type" yaml:"type"`
	StartLine   int     `json:"startLine" yaml:"start_line"`
	EndLine     int     `json:"endLine" yaml:"end_line"`
	NewCode     string  `json:"newCode,omitempty" yaml:"new_code,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// SuggestedFix is a tagged variant: either free-text advice (display only)
// or a structured CodeFix that can be applied mechanically. At most one of
// the two fields is set.
type SuggestedFix struct {
	Text string   `json:"text,omitempty" yaml:"text,omitempty"`
	Fix  *CodeFix `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// FreeText constructs a display-only suggestion.
func FreeText(text string) *SuggestedFix {
	return &SuggestedFix{Text: text}
}

// Structured constructs a machine-appliable suggestion.
func Structured(fix CodeFix) *SuggestedFix {
	return &SuggestedFix{Fix: &fix}
}

// Appliable returns true if the suggestion carries a structured fix.
func (s *SuggestedFix) Appliable() bool {
	return s != nil && s.Fix != nil
}

// Issue is a single AI-reported code review finding.
//
// The AI collaborator produces it, reconciliation may correct Line exactly
// once, and the fix orchestrator mutates FixStatus. Everything else is
// immutable for the remainder of the review session.
type Issue struct {
	// File is the workspace-relative path of the reviewed file.
	File string `json:"file" yaml:"file"`

	// Line is the 1-based line the issue refers to. AI-reported, possibly
	// wrong until reconciled against live file content.
	Line int `json:"line" yaml:"line"`

	// CodeSnippet is the expected textual content of Line, as the model saw
	// it. Its presence enables reconciliation; absence skips it.
	CodeSnippet string `json:"codeSnippet,omitempty" yaml:"code_snippet,omitempty"`

	Severity Severity `json:"severity" yaml:"severity"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
	Message  string   `json:"message" yaml:"message"`

	// Language is the detected language of File, informational only.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// SuggestedFix is optional; only the structured variant is appliable.
	SuggestedFix *SuggestedFix `json:"suggestedFix,omitempty" yaml:"suggested_fix,omitempty"`

	// FixStatus starts pending and is owned by the fix orchestrator.
	FixStatus FixStatus `json:"fixStatus" yaml:"fix_status"`
}

// Location returns the issue position as "path:line".
func (i *Issue) Location() string {
	return fmt.Sprintf("%s:%d", i.File, i.Line)
}

// HasAppliableFix returns true if the issue carries a structured fix that
// has not already been applied or dismissed.
func (i *Issue) HasAppliableFix() bool {
	return i.SuggestedFix.Appliable() && (i.FixStatus == FixPending || i.FixStatus == FixFailed)
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int, 3)
	for i := range issues {
		counts[issues[i].Severity]++
	}
	return counts
}

// HighestSeverity returns the most severe level present, or "" for no issues.
func HighestSeverity(issues []Issue) Severity {
	var highest Severity
	for i := range issues {
		if issues[i].Severity.Rank() > highest.Rank() {
			highest = issues[i].Severity
		}
	}
	return highest
}
