// Command miniprint fetches the daily mini crossword and prints it as a
// receipt: the board as a bitmap sized to the printer's dot grid, the clues
// wrapped to its column width, and the credits underneath.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ostium/miniprint/board"
	"github.com/ostium/miniprint/escpos"
	"github.com/ostium/miniprint/profile"
	"github.com/ostium/miniprint/puzzle"
	"github.com/ostium/miniprint/receipt"
)

func main() {
	url := flag.String("url", puzzle.DefaultURL, "puzzle document endpoint")
	profilePath := flag.String("profile", "", "printer profile file (built-in 32-column default when empty)")
	devicePath := flag.String("device", "", "printer device path (ESC/POS bytes go to stdout when empty)")
	boardPath := flag.String("board", "", "also dump the rasterized board as PNG to this path")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	if err := run(*url, *profilePath, *devicePath, *boardPath, *timeout); err != nil {
		log.Fatalf("miniprint: %v", err)
	}
}

// run chains fetch, rasterization and printing. Any failure aborts the
// whole receipt; there is no retry and no partial fallback.
func run(url, profilePath, devicePath, boardPath string, timeout time.Duration) (err error) {
	prof := profile.Default()
	if profilePath != "" {
		prof, err = profile.Load(profilePath)
		if err != nil {
			return fmt.Errorf("load printer profile: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	doc, err := puzzle.Fetch(ctx, http.DefaultClient, url)
	if err != nil {
		return err
	}

	if boardPath != "" {
		if err := dumpBoard(doc, prof, boardPath); err != nil {
			return err
		}
	}

	out := io.Writer(os.Stdout)
	if devicePath != "" {
		f, oerr := os.OpenFile(devicePath, os.O_WRONLY, 0)
		if oerr != nil {
			return fmt.Errorf("open printer device: %w", oerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close printer device: %w", cerr)
			}
		}()
		out = f
	}

	p := escpos.New(out)
	if err := p.Init(); err != nil {
		return err
	}
	dev := receipt.Device{
		CharsPerLine:  prof.CharsPerLine,
		PixelsPerChar: prof.PixelsPerChar,
		DPI:           prof.DPI,
	}
	return receipt.Print(p, doc, dev, receipt.Options{})
}

// dumpBoard writes the rasterized board to a PNG for inspection without
// feeding paper.
func dumpBoard(doc *puzzle.Puzzle, prof profile.Profile, path string) error {
	bm, err := board.Render(doc.Boards[0].Markup, prof.CharsPerLine*prof.PixelsPerChar, prof.DPI)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create board dump: %w", err)
	}
	if err := png.Encode(f, bm.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode board dump: %w", err)
	}
	return f.Close()
}
