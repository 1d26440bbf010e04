// Package fix converts structured line-range fixes into byte-offset edits
// and computes preview content without mutating the original document.
package fix

import "bytes"

// TextEdit is a single byte-range replacement in a document.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	// StartOffset == EndOffset denotes a pure insertion.
	EndOffset int

	// NewText is the replacement text; empty for a deletion.
	NewText string
}

// IsInsert returns true for a zero-width edit.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// ApplyEdit splices a single validated edit into content and returns the
// result. The input slice is never modified; the preview a caller renders
// is byte-identical to what would be persisted.
func ApplyEdit(content []byte, edit TextEdit) []byte {
	var out bytes.Buffer
	out.Grow(len(content) + len(edit.NewText) - (edit.EndOffset - edit.StartOffset))

	out.Write(content[:edit.StartOffset])
	out.WriteString(edit.NewText)
	out.Write(content[edit.EndOffset:])

	return out.Bytes()
}
