package fix

import (
	"strings"

	"github.com/yaklabco/revfix/pkg/review"
)

// BuildPreview computes the document content that would result from
// applying the fix, without mutating original. The same output powers the
// diff a user confirms and the content that gets persisted, so they are
// guaranteed byte-identical.
//
// Returns a *RangeError if the fix does not resolve against the document's
// current line count.
func BuildPreview(original []byte, f review.CodeFix) ([]byte, error) {
	idx := IndexLines(original)

	span, err := ResolveRange(f, idx.Count())
	if err != nil {
		return nil, err
	}

	start, end := span.Offsets(idx)
	edit := TextEdit{StartOffset: start, EndOffset: end, NewText: editText(f, idx, span)}

	return ApplyEdit(original, edit), nil
}

// editText prepares the replacement text for the resolved span, supplying
// line terminators so the splice never joins or splits neighboring lines.
func editText(f review.CodeFix, idx *LineIndex, span Span) string {
	switch f.Type {
	case review.FixDelete:
		return ""

	case review.FixInsert:
		text := f.NewCode
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if span.StartLine > idx.Count() && idx.Count() > 0 && !idx.Terminated(idx.Count()) {
			// Appending after an unterminated final line.
			text = "\n" + text
		}
		return text

	default: // replace
		// The span excludes the final terminator, so the replacement must
		// not carry one of its own.
		return strings.TrimSuffix(f.NewCode, "\n")
	}
}
