// Package receipt composes the printed receipt: it turns a puzzle document
// and the printer's fixed geometry into an ordered stream of print
// directives. Composition is strictly sequential; every directive goes to
// the printer the moment it is produced, and the first failure aborts the
// rest (what already printed stays printed).
package receipt

import (
	"fmt"
	"strings"

	"github.com/ostium/miniprint/board"
	"github.com/ostium/miniprint/layout"
	"github.com/ostium/miniprint/puzzle"
)

// Title printed at the top of every receipt.
const Title = "The NYT Mini Crossword"

// Printer receives print directives in emission order.
type Printer interface {
	WriteLine(text string) error
	Feed() error
	WriteBitmap(b *board.Bitmap) error
	Cut() error
}

// Device carries the printer geometry the composer needs. All values come
// from the caller; the composer reads no ambient configuration.
type Device struct {
	CharsPerLine  int
	PixelsPerChar int
	DPI           float64
}

// RenderFunc rasterizes board markup to a bitmap of exactly targetWidth
// pixels.
type RenderFunc func(markup string, targetWidth int, dpi float64) (*board.Bitmap, error)

// Options configures composition. A nil Render uses board.Render.
type Options struct {
	Render RenderFunc
}

// IndexError reports a clue list referencing a position outside the board's
// clue sequence. It surfaces mid-receipt: directives emitted before the bad
// reference have already reached the paper.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("clue index %d out of range (%d clues)", e.Index, e.Len)
}

// Print composes the receipt for doc onto p. The board is rasterized before
// the first directive is emitted, so a render failure leaves the paper
// untouched. Directive order: title, date, feed, board image, two feeds,
// then per clue list a direction header, its wrapped clues and a feed, then
// the constructor byline, the editor line and the cut.
func Print(p Printer, doc *puzzle.Puzzle, dev Device, opts Options) error {
	render := opts.Render
	if render == nil {
		render = board.Render
	}
	if len(doc.Boards) == 0 {
		return fmt.Errorf("document has no boards")
	}
	b := &doc.Boards[0]

	bitmap, err := render(b.Markup, dev.CharsPerLine*dev.PixelsPerChar, dev.DPI)
	if err != nil {
		return err
	}

	if err := p.WriteLine(Title); err != nil {
		return err
	}
	if err := p.WriteLine(doc.PublicationDate.Display()); err != nil {
		return err
	}
	if err := p.Feed(); err != nil {
		return err
	}
	if err := p.WriteBitmap(bitmap); err != nil {
		return err
	}
	if err := p.Feed(); err != nil {
		return err
	}
	if err := p.Feed(); err != nil {
		return err
	}

	for _, list := range b.ClueLists {
		if err := p.WriteLine(list.Name.String() + ":"); err != nil {
			return err
		}
		for _, idx := range list.Clues {
			if idx < 0 || idx >= len(b.Clues) {
				return &IndexError{Index: idx, Len: len(b.Clues)}
			}
			clue := b.Clues[idx]
			label := clue.Label + ": "
			hanging := strings.Repeat(" ", layout.StringWidth(label))
			for _, line := range layout.Wrap(clue.Text[0].Plain, dev.CharsPerLine, label, hanging) {
				if err := p.WriteLine(line); err != nil {
					return err
				}
			}
		}
		if err := p.Feed(); err != nil {
			return err
		}
	}

	byline := layout.JoinNames(doc.Constructors)
	for _, line := range layout.Wrap(byline, dev.CharsPerLine, "By ", "   ") {
		if err := p.WriteLine(line); err != nil {
			return err
		}
	}
	if err := p.WriteLine("Edited by " + doc.Editor); err != nil {
		return err
	}

	return p.Cut()
}
