// Package layout provides the text layout primitives for a fixed-width
// receipt: greedy word wrapping with hanging indents, and natural-language
// name lists. All widths are display columns as rendered by the printer,
// measured per character cell, not byte or rune counts.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of s in character cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap greedily breaks text on whitespace into lines no wider than width
// display columns. The first line is prefixed with initialIndent, every
// following line with continuationIndent; the two indents should have equal
// display width so the body aligns under the label.
//
// A single word wider than the remaining columns is placed on a line of its
// own and allowed to overflow rather than being split or truncated. Empty or
// all-whitespace text yields no lines.
func Wrap(text string, width int, initialIndent, continuationIndent string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := initialIndent
	lineWidth := StringWidth(initialIndent)
	hasWord := false
	for _, word := range words {
		wordWidth := StringWidth(word)
		switch {
		case !hasWord:
			line += word
			lineWidth += wordWidth
			hasWord = true
		case lineWidth+1+wordWidth <= width:
			line += " " + word
			lineWidth += 1 + wordWidth
		default:
			lines = append(lines, line)
			line = continuationIndent + word
			lineWidth = StringWidth(continuationIndent) + wordWidth
		}
	}
	return append(lines, line)
}

// JoinNames renders an ordered name list the way it reads in a byline:
// one name stands alone, two are joined with "and", three or more are
// comma-separated with ", and" before the last. names must not be empty;
// an empty list is a caller bug.
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		panic("layout: JoinNames requires at least one name")
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}

	var b strings.Builder
	for i, name := range names {
		if i == len(names)-1 {
			b.WriteString(", and ")
		} else if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	return b.String()
}
