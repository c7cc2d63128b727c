package layout_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ostium/miniprint/layout"
)

func TestWrapEmptyText(t *testing.T) {
	if lines := layout.Wrap("", 32, "5: ", "   "); lines != nil {
		t.Fatalf("expected no lines for empty text, got %q", lines)
	}
	if lines := layout.Wrap("   \t ", 32, "", ""); lines != nil {
		t.Fatalf("expected no lines for blank text, got %q", lines)
	}
}

func TestWrapSingleLine(t *testing.T) {
	lines := layout.Wrap("Capital of France", 32, "5: ", "   ")
	want := []string{"5: Capital of France"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestWrapHangingIndent(t *testing.T) {
	lines := layout.Wrap("Capital of France", 12, "5: ", "   ")
	want := []string{"5: Capital", "   of France"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestWrapIndentPrefixes(t *testing.T) {
	lines := layout.Wrap("one two three four five six seven eight", 12, "10: ", "    ")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "10: ") {
		t.Fatalf("first line missing initial indent: %q", lines[0])
	}
	for i, line := range lines[1:] {
		if !strings.HasPrefix(line, "    ") {
			t.Fatalf("continuation line %d missing indent: %q", i+1, line)
		}
	}
}

func TestWrapWidthLimit(t *testing.T) {
	const width = 16
	text := "the quick brown fox jumps over the lazy dog again and again"
	for _, lines := range [][]string{
		layout.Wrap(text, width, "", ""),
		layout.Wrap(text, width, "1: ", "   "),
	} {
		for i, line := range lines {
			if w := layout.StringWidth(line); w > width {
				t.Fatalf("line %d exceeds width: %q (%d > %d)", i, line, w, width)
			}
		}
	}
}

func TestWrapOversizedWord(t *testing.T) {
	lines := layout.Wrap("a pneumonoultramicroscopic b", 10, "", "")
	want := []string{"a", "pneumonoultramicroscopic", "b"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestWrapOversizedFirstWord(t *testing.T) {
	lines := layout.Wrap("pneumonoultramicroscopic b", 10, "1: ", "   ")
	want := []string{"1: pneumonoultramicroscopic", "   b"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

// Wide characters occupy two display columns; the wrap budget must count
// cells, not runes.
func TestWrapWideRunes(t *testing.T) {
	// Each pair is 4 cells, so no two words fit a 5-cell line together.
	lines := layout.Wrap("日本 文字 例", 5, "", "")
	want := []string{"日本", "文字", "例"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i, line := range lines {
		if w := layout.StringWidth(line); w > 5 {
			t.Fatalf("line %d exceeds width: %q (%d)", i, line, w)
		}
	}
}

func TestJoinNames(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
		{[]string{"A", "B", "C", "D"}, "A, B, C, and D"},
	}
	for _, tc := range cases {
		if got := layout.JoinNames(tc.names); got != tc.want {
			t.Fatalf("JoinNames(%q) = %q, want %q", tc.names, got, tc.want)
		}
	}
}

func TestJoinNamesEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty name list")
		}
	}()
	layout.JoinNames(nil)
}
