package fix

import (
	"fmt"

	"github.com/yaklabco/revfix/pkg/review"
)

// Span is a resolved line-range address for a fix: a 1-based, inclusive
// line span plus the operation mode. It is line-relative so that callers
// can report applied ranges without re-deriving them from offsets.
type Span struct {
	StartLine int
	EndLine   int
	Type      review.FixType
}

// RangeError reports a fix whose line range fails validation against the
// document's current line count. It names the failed bound and the valid
// range; ranges are never silently clamped or swapped.
type RangeError struct {
	Field string // "type", "startLine", or "endLine"
	Value int
	Min   int
	Max   int
	Type  review.FixType
}

func (e *RangeError) Error() string {
	if e.Field == "type" {
		return fmt.Sprintf("invalid fix type %q", e.Type)
	}
	return fmt.Sprintf("%s %d out of range for %s fix: valid range is %d-%d",
		e.Field, e.Value, e.Type, e.Min, e.Max)
}

// ResolveRange validates a structured fix against the current line count
// and resolves it to a Span.
//
// Rules:
//   - insert: 1 <= startLine <= lineCount+1; the extra line permits
//     appending past the last line. EndLine is ignored.
//   - replace/delete: 1 <= startLine <= lineCount, startLine <= endLine,
//     and endLine <= lineCount. Out-of-order ranges are an error.
func ResolveRange(f review.CodeFix, lineCount int) (Span, error) {
	if !f.Type.IsValid() {
		return Span{}, &RangeError{Field: "type", Type: f.Type}
	}

	if f.Type == review.FixInsert {
		if f.StartLine < 1 || f.StartLine > lineCount+1 {
			return Span{}, &RangeError{
				Field: "startLine", Value: f.StartLine,
				Min: 1, Max: lineCount + 1, Type: f.Type,
			}
		}
		return Span{StartLine: f.StartLine, EndLine: f.StartLine, Type: f.Type}, nil
	}

	if f.StartLine < 1 || f.StartLine > lineCount {
		return Span{}, &RangeError{
			Field: "startLine", Value: f.StartLine,
			Min: 1, Max: lineCount, Type: f.Type,
		}
	}
	if f.EndLine < f.StartLine || f.EndLine > lineCount {
		return Span{}, &RangeError{
			Field: "endLine", Value: f.EndLine,
			Min: f.StartLine, Max: lineCount, Type: f.Type,
		}
	}

	return Span{StartLine: f.StartLine, EndLine: f.EndLine, Type: f.Type}, nil
}

// Offsets converts a resolved span into a byte-offset edit against the
// indexed document:
//
//   - insert resolves to a zero-width point at the start of StartLine
//   - delete spans from the start of StartLine through the start of the
//     line after EndLine, consuming the final terminator (clamped at EOF)
//   - replace spans from the start of StartLine through the end of
//     EndLine's content, preserving the terminator
func (s Span) Offsets(idx *LineIndex) (start, end int) {
	switch s.Type {
	case review.FixInsert:
		point := idx.Start(s.StartLine)
		return point, point
	case review.FixDelete:
		return idx.Start(s.StartLine), idx.Start(s.EndLine + 1)
	default: // replace
		return idx.Start(s.StartLine), idx.ContentEnd(s.EndLine)
	}
}
