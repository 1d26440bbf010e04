package fix_test

import (
	"reflect"
	"testing"

	"github.com/yaklabco/revfix/pkg/fix"
)

func TestIndexLinesCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty document", "", 0},
		{"single terminated line", "a\n", 1},
		{"single unterminated line", "a", 1},
		{"three terminated lines", "a\nb\nc\n", 3},
		{"trailing partial line", "a\nb\nc", 3},
		{"blank lines count", "\n\n", 2},
		{"crlf lines", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fix.IndexLines([]byte(tt.content)).Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLineIndexOffsets(t *testing.T) {
	t.Parallel()

	idx := fix.IndexLines([]byte("aa\nbbb\nc"))

	if got := idx.Start(1); got != 0 {
		t.Errorf("Start(1) = %d, want 0", got)
	}
	if got := idx.Start(2); got != 3 {
		t.Errorf("Start(2) = %d, want 3", got)
	}
	if got := idx.Start(3); got != 7 {
		t.Errorf("Start(3) = %d, want 7", got)
	}
	// Past the last line resolves to the append position.
	if got := idx.Start(4); got != 8 {
		t.Errorf("Start(4) = %d, want 8", got)
	}

	if got := idx.ContentEnd(1); got != 2 {
		t.Errorf("ContentEnd(1) = %d, want 2", got)
	}
	if got := idx.ContentEnd(2); got != 6 {
		t.Errorf("ContentEnd(2) = %d, want 6", got)
	}
	// Unterminated final line ends at end of document.
	if got := idx.ContentEnd(3); got != 8 {
		t.Errorf("ContentEnd(3) = %d, want 8", got)
	}

	if !idx.Terminated(1) || !idx.Terminated(2) {
		t.Error("lines 1 and 2 should be terminated")
	}
	if idx.Terminated(3) {
		t.Error("line 3 should not be terminated")
	}
}

func TestLineIndexCRLF(t *testing.T) {
	t.Parallel()

	idx := fix.IndexLines([]byte("ab\r\ncd\r\n"))

	if got := idx.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	// ContentEnd excludes both the CR and the LF.
	if got := idx.ContentEnd(1); got != 2 {
		t.Errorf("ContentEnd(1) = %d, want 2", got)
	}
	if got := idx.Start(2); got != 4 {
		t.Errorf("Start(2) = %d, want 4", got)
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"terminated", "a\nb\n", []string{"a", "b"}},
		{"unterminated", "a\nb", []string{"a", "b"}},
		{"crlf stripped", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank interior line", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix.SplitLines([]byte(tt.content))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %#v, want %#v", tt.content, got, tt.want)
			}
		})
	}
}
