package fix

import "bytes"

// LineIndex maps 1-based line numbers to byte offsets in a document.
// Lines are terminated by '\n'; CRLF terminators are treated as part of the
// terminator, not the line content.
type LineIndex struct {
	content []byte

	// starts[i] is the byte offset of the start of line i+1.
	starts []int
}

// IndexLines builds a LineIndex for content.
//
// An empty document has zero lines. Content without a trailing newline
// still counts its final partial line.
func IndexLines(content []byte) *LineIndex {
	idx := &LineIndex{content: content}
	if len(content) == 0 {
		return idx
	}

	idx.starts = append(idx.starts, 0)
	pos := 0
	for {
		nl := bytes.IndexByte(content[pos:], '\n')
		if nl < 0 {
			break
		}
		pos += nl + 1
		if pos >= len(content) {
			break
		}
		idx.starts = append(idx.starts, pos)
	}

	return idx
}

// Count returns the number of lines in the document.
func (idx *LineIndex) Count() int {
	return len(idx.starts)
}

// Start returns the byte offset of the start of the 1-based line.
// Lines past the last resolve to end-of-document (the append position).
func (idx *LineIndex) Start(line int) int {
	if line > len(idx.starts) {
		return len(idx.content)
	}
	return idx.starts[line-1]
}

// ContentEnd returns the byte offset just past the content of the 1-based
// line, excluding its line terminator ('\n' or '\r\n').
func (idx *LineIndex) ContentEnd(line int) int {
	end := idx.Start(line + 1)
	if end > 0 && end <= len(idx.content) && line <= len(idx.starts) {
		if end == len(idx.content) && idx.content[end-1] != '\n' {
			// Unterminated final line.
			return end
		}
		end-- // step over '\n'
		if end > 0 && idx.content[end-1] == '\r' {
			end--
		}
	}
	return end
}

// Terminated reports whether the 1-based line ends with a line terminator.
func (idx *LineIndex) Terminated(line int) bool {
	next := idx.Start(line + 1)
	return next > 0 && next <= len(idx.content) && idx.content[next-1] == '\n'
}

// SplitLines splits content into lines without terminators. A trailing
// newline does not produce a final empty line.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	raw := bytes.Split(content, []byte("\n"))
	if len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(bytes.TrimSuffix(b, []byte("\r")))
	}
	return lines
}
