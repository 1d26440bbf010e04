package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/revfix/pkg/fix"
)

// FormatDiff renders a unified diff with per-line-kind styling. Lines wider
// than width are truncated so hunks stay readable in narrow terminals.
func (s *Styles) FormatDiff(d *fix.Diff, width int) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- a/"+d.Path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+d.Path) + "\n")

	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			var style = s.DiffContext
			prefix := " "
			switch line.Kind {
			case fix.DiffAdd:
				style, prefix = s.DiffAdd, "+"
			case fix.DiffRemove:
				style, prefix = s.DiffRemove, "-"
			}
			builder.WriteString(style.Render(prefix+truncate(line.Content, width-1)) + "\n")
		}
	}

	return builder.String()
}

func truncate(line string, width int) string {
	if width <= 3 || len(line) <= width {
		return line
	}
	return line[:width-3] + "..."
}
