package board

import (
	"image"
	"image/color"
)

// Bitmap is a monochrome raster with one bit per dot. Rows are packed
// MSB-first into Stride bytes each; a set bit is a black (printed) dot.
// This is the same row layout thermal printers take for raster images,
// so the pixel data can be handed to the transport without re-encoding.
type Bitmap struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewBitmap returns an all-white bitmap of the given pixel dimensions.
func NewBitmap(width, height int) *Bitmap {
	stride := (width + 7) / 8
	return &Bitmap{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}
}

// Set marks the dot at (x, y) black. Out-of-bounds coordinates are ignored.
func (b *Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Stride+x/8] |= 0x80 >> uint(x%8)
}

// At reports whether the dot at (x, y) is black.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Stride+x/8]&(0x80>>uint(x%8)) != 0
}

// Image converts the bitmap to a grayscale image, for PNG dumps and
// inspection. Black dots become black pixels.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// threshold converts a rendered RGBA buffer to one bit per dot at 50%
// luminance. Cutting hard at mid-gray keeps antialiased edges from smearing
// thin grid lines into dither noise at print density.
func threshold(img *image.RGBA) *Bitmap {
	bounds := img.Bounds()
	bm := NewBitmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r := int(img.Pix[i])
			g := int(img.Pix[i+1])
			b := int(img.Pix[i+2])
			lum := (299*r + 587*g + 114*b) / 1000
			if lum < 128 {
				bm.Set(x, y)
			}
		}
	}
	return bm
}
