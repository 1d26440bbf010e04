package fix

import (
	"fmt"
	"strings"
)

// DiffLineKind classifies a line within a diff hunk.
type DiffLineKind int

const (
	DiffContext DiffLineKind = iota
	DiffAdd
	DiffRemove
)

// DiffLine is one line of a hunk, without its +/-/space prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// Hunk is a contiguous group of changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []DiffLine
}

// Diff is a unified diff between a document and its fix preview.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// hunkContext is the number of unchanged lines shown around each change.
const hunkContext = 3

// NewDiff computes a unified diff between original and modified content.
// Returns nil when the contents are identical.
func NewDiff(path string, original, modified []byte) *Diff {
	oldLines := SplitLines(original)
	newLines := SplitLines(modified)

	ops := diffOps(oldLines, newLines)

	changed := false
	for _, op := range ops {
		if op.kind != DiffContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, op := range ops {
		switch op.kind {
		case DiffAdd:
			d.Additions++
		case DiffRemove:
			d.Deletions++
		}
	}
	return d
}

// HasChanges returns true if the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", d.Path)
	fmt.Fprintf(&b, "+++ b/%s\n", d.Path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			switch line.Kind {
			case DiffAdd:
				b.WriteByte('+')
			case DiffRemove:
				b.WriteByte('-')
			default:
				b.WriteByte(' ')
			}
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps produces the full edit script between two line slices using an
// LCS table with backtracking.
func diffOps(oldLines, newLines []string) []diffOp {
	rows, cols := len(oldLines), len(newLines)

	table := make([][]int, rows+1)
	for r := range table {
		table[r] = make([]int, cols+1)
	}
	for r := rows - 1; r >= 0; r-- {
		for c := cols - 1; c >= 0; c-- {
			if oldLines[r] == newLines[c] {
				table[r][c] = table[r+1][c+1] + 1
			} else {
				table[r][c] = max(table[r+1][c], table[r][c+1])
			}
		}
	}

	ops := make([]diffOp, 0, rows+cols)
	r, c := 0, 0
	for r < rows && c < cols {
		switch {
		case oldLines[r] == newLines[c]:
			ops = append(ops, diffOp{DiffContext, oldLines[r]})
			r++
			c++
		case table[r+1][c] >= table[r][c+1]:
			ops = append(ops, diffOp{DiffRemove, oldLines[r]})
			r++
		default:
			ops = append(ops, diffOp{DiffAdd, newLines[c]})
			c++
		}
	}
	for ; r < rows; r++ {
		ops = append(ops, diffOp{DiffRemove, oldLines[r]})
	}
	for ; c < cols; c++ {
		ops = append(ops, diffOp{DiffAdd, newLines[c]})
	}

	return ops
}

// groupHunks groups the edit script into hunks, merging changes whose
// context windows touch.
func groupHunks(ops []diffOp) []Hunk {
	// Locate change regions as [start, end) index pairs into ops.
	type region struct{ start, end int }
	var regions []region
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != DiffContext {
			i++
		}
		regions = append(regions, region{start, i})
	}
	if len(regions) == 0 {
		return nil
	}

	// Merge regions separated by at most two context windows.
	merged := []region{regions[0]}
	for _, reg := range regions[1:] {
		last := &merged[len(merged)-1]
		if reg.start-last.end <= hunkContext*2 {
			last.end = reg.end
		} else {
			merged = append(merged, reg)
		}
	}

	hunks := make([]Hunk, 0, len(merged))
	for _, reg := range merged {
		lo := max(reg.start-hunkContext, 0)
		hi := min(reg.end+hunkContext, len(ops))

		h := Hunk{OldStart: 1, NewStart: 1}
		for _, op := range ops[:lo] {
			if op.kind != DiffAdd {
				h.OldStart++
			}
			if op.kind != DiffRemove {
				h.NewStart++
			}
		}
		for _, op := range ops[lo:hi] {
			h.Lines = append(h.Lines, DiffLine{Kind: op.kind, Content: op.content})
			if op.kind != DiffAdd {
				h.OldCount++
			}
			if op.kind != DiffRemove {
				h.NewCount++
			}
		}
		hunks = append(hunks, h)
	}

	return hunks
}
