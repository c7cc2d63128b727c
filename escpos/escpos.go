// Package escpos encodes print directives as ESC/POS command bytes on an
// io.Writer. The writer is typically the printer's character device, or
// stdout when inspecting output without a printer attached.
package escpos

import (
	"fmt"
	"io"

	"github.com/ostium/miniprint/board"
	"github.com/ostium/miniprint/receipt"
)

// Printer streams ESC/POS commands to a single writer. Every directive is
// written immediately; nothing is buffered or reordered.
type Printer struct {
	w io.Writer
}

var _ receipt.Printer = (*Printer)(nil)

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Init resets the printer to its power-on state (ESC @).
func (p *Printer) Init() error {
	return p.raw(0x1B, '@')
}

// WriteLine prints one line of UTF-8 text followed by a line feed.
func (p *Printer) WriteLine(text string) error {
	if err := p.write([]byte(text)); err != nil {
		return err
	}
	return p.raw('\n')
}

// Feed prints the buffer and advances the paper by one text line.
func (p *Printer) Feed() error {
	return p.FeedN(1)
}

// FeedN advances the paper by n text lines (ESC d).
func (p *Printer) FeedN(n int) error {
	if n < 0 || n > 255 {
		return fmt.Errorf("escpos: feed count %d out of range", n)
	}
	return p.raw(0x1B, 'd', byte(n))
}

// WriteBitmap prints a raster image at normal density (GS v 0). The
// bitmap's packed rows are exactly the command's data layout, so the pixel
// data goes out as-is.
func (p *Printer) WriteBitmap(b *board.Bitmap) error {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("escpos: refusing to print an empty bitmap")
	}
	if b.Stride > 0xFFFF || b.Height > 0xFFFF {
		return fmt.Errorf("escpos: bitmap %dx%d exceeds the raster command limits", b.Width, b.Height)
	}
	header := []byte{
		0x1D, 'v', '0', 0x00,
		byte(b.Stride), byte(b.Stride >> 8),
		byte(b.Height), byte(b.Height >> 8),
	}
	if err := p.write(header); err != nil {
		return err
	}
	return p.write(b.Pix)
}

// Cut feeds the tail of the receipt past the blade and performs a partial
// cut (GS V A).
func (p *Printer) Cut() error {
	return p.raw(0x1D, 'V', 'A', 0x10)
}

func (p *Printer) raw(cmd ...byte) error {
	return p.write(cmd)
}

func (p *Printer) write(data []byte) error {
	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("escpos: write: %w", err)
	}
	return nil
}
