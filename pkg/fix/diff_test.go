package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/revfix/pkg/fix"
)

func TestNewDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	if d := fix.NewDiff("main.go", []byte("a\nb\n"), []byte("a\nb\n")); d != nil {
		t.Errorf("expected nil diff for identical content, got %+v", d)
	}

	var d *fix.Diff
	if d.HasChanges() {
		t.Error("nil diff should report no changes")
	}
	if d.String() != "" {
		t.Error("nil diff should render empty")
	}
}

func TestNewDiffSingleReplacement(t *testing.T) {
	t.Parallel()

	original := "a\nb\nc\n"
	modified := "a\nB\nc\n"

	d := fix.NewDiff("main.go", []byte(original), []byte(modified))
	if d == nil {
		t.Fatal("expected a diff")
	}
	if d.Additions != 1 || d.Deletions != 1 {
		t.Errorf("additions/deletions = %d/%d, want 1/1", d.Additions, d.Deletions)
	}
	if len(d.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(d.Hunks))
	}

	h := d.Hunks[0]
	if h.OldStart != 1 || h.NewStart != 1 {
		t.Errorf("hunk starts = %d/%d, want 1/1", h.OldStart, h.NewStart)
	}
	if h.OldCount != 3 || h.NewCount != 3 {
		t.Errorf("hunk counts = %d/%d, want 3/3", h.OldCount, h.NewCount)
	}

	out := d.String()
	for _, want := range []string{
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,3 +1,3 @@",
		"-b",
		"+B",
		" a",
		" c",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestNewDiffDistantChangesSplitIntoHunks(t *testing.T) {
	t.Parallel()

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}
	original := strings.Join(lines, "\n") + "\n"

	changed := make([]string, len(lines))
	copy(changed, lines)
	changed[0] = "first"
	changed[19] = "last"
	modified := strings.Join(changed, "\n") + "\n"

	d := fix.NewDiff("big.txt", []byte(original), []byte(modified))
	if d == nil {
		t.Fatal("expected a diff")
	}
	if len(d.Hunks) != 2 {
		t.Fatalf("hunks = %d, want 2", len(d.Hunks))
	}
	if d.Hunks[1].OldStart <= d.Hunks[0].OldStart {
		t.Errorf("hunks out of order: %d then %d", d.Hunks[0].OldStart, d.Hunks[1].OldStart)
	}
}

func TestNewDiffNearbyChangesMerge(t *testing.T) {
	t.Parallel()

	original := "a\nb\nc\nd\ne\n"
	modified := "A\nb\nc\nd\nE\n"

	d := fix.NewDiff("f.txt", []byte(original), []byte(modified))
	if d == nil {
		t.Fatal("expected a diff")
	}
	if len(d.Hunks) != 1 {
		t.Errorf("hunks = %d, want 1 (changes within context window merge)", len(d.Hunks))
	}
}

func TestNewDiffPureInsertion(t *testing.T) {
	t.Parallel()

	d := fix.NewDiff("f.txt", []byte("a\nc\n"), []byte("a\nb\nc\n"))
	if d == nil {
		t.Fatal("expected a diff")
	}
	if d.Additions != 1 || d.Deletions != 0 {
		t.Errorf("additions/deletions = %d/%d, want 1/0", d.Additions, d.Deletions)
	}
}
