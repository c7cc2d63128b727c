// Package board rasterizes the puzzle's SVG board into a monochrome bitmap
// sized for the printer's dot grid. The output width is always exactly the
// requested pixel width; the height follows from the board's aspect ratio
// under a uniform scale rounded to two decimals.
package board

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// RenderError reports board markup that could not be turned into a bitmap.
// Rendering has no fallback: a RenderError aborts the whole receipt.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render board: %s: %v", e.Reason, e.Err)
	}
	return "render board: " + e.Reason
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render rasterizes SVG markup into a bitmap exactly targetWidth pixels
// wide. The board's intrinsic size is resolved at dpi, the uniform scale is
// Scale(intrinsicWidth, targetWidth), and the output height is the intrinsic
// height under that scale, rounded to the nearest pixel. Dots the shape does
// not cover stay white.
func Render(markup string, targetWidth int, dpi float64) (*Bitmap, error) {
	if targetWidth <= 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("target width must be positive, got %d", targetWidth)}
	}
	if dpi <= 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("dpi must be positive, got %g", dpi)}
	}

	w0, h0, err := intrinsicSize(markup, dpi)
	if err != nil {
		return nil, &RenderError{Reason: "resolve intrinsic size", Err: err}
	}
	if w0 <= 0 || h0 <= 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("non-positive intrinsic size %gx%g", w0, h0)}
	}

	scale := Scale(w0, targetWidth)
	height := int(math.Round(h0 * scale))
	if height <= 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("scaled height %gx%g rounds to zero", h0, scale)}
	}

	c, err := canvas.ParseSVG(strings.NewReader(markup))
	if err != nil {
		return nil, &RenderError{Reason: "parse markup", Err: err}
	}
	if c.W <= 0 || c.H <= 0 {
		return nil, &RenderError{Reason: fmt.Sprintf("parsed canvas has size %gx%g", c.W, c.H)}
	}

	// The canvas spans the same extent as w0 intrinsic pixels, so pixels per
	// canvas unit is w0/c.W; the output resolution scales that by the rounded
	// factor. The buffer width stays fixed at targetWidth regardless, so the
	// bitmap matches the printer's addressable line width exactly.
	res := canvas.DPMM(scale * w0 / c.W)

	img := image.NewRGBA(image.Rect(0, 0, targetWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	ras := rasterizer.FromImage(img, res, canvas.DefaultColorSpace)
	c.RenderTo(ras)
	ras.Close()

	return threshold(img), nil
}

// Scale returns the uniform scale factor mapping an intrinsic width onto the
// target pixel width, rounded to two decimal places. An unrounded scale can
// land 1-pixel grid lines on fractional pixel boundaries where they vanish at
// print resolution; snapping the scale keeps line placement consistent across
// the whole image.
func Scale(intrinsicWidth float64, targetWidth int) float64 {
	return math.Round(float64(targetWidth)/intrinsicWidth*100) / 100
}

// intrinsicSize reads the root svg element's width/height, falling back to
// the viewBox when they are absent or percentages. Physical units are
// resolved at dpi; user units are pixels.
func intrinsicSize(markup string, dpi float64) (w, h float64, err error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	var start xml.StartElement
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("no root element: %w", err)
		}
		if el, ok := tok.(xml.StartElement); ok {
			start = el
			break
		}
	}
	if start.Name.Local != "svg" {
		return 0, 0, fmt.Errorf("root element is %q, not svg", start.Name.Local)
	}

	var widthAttr, heightAttr, viewBox string
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "width":
			widthAttr = attr.Value
		case "height":
			heightAttr = attr.Value
		case "viewBox":
			viewBox = attr.Value
		}
	}

	var vbW, vbH float64
	hasViewBox := false
	if viewBox != "" {
		fields := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
		if len(fields) != 4 {
			return 0, 0, fmt.Errorf("viewBox %q does not have four values", viewBox)
		}
		vbW, err = strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("viewBox width: %w", err)
		}
		vbH, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("viewBox height: %w", err)
		}
		hasViewBox = true
	}

	w, err = resolveDimension(widthAttr, dpi, vbW, hasViewBox)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err = resolveDimension(heightAttr, dpi, vbH, hasViewBox)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}

// resolveDimension turns one svg length attribute into pixels. Empty and
// percentage lengths defer to the viewBox.
func resolveDimension(attr string, dpi, viewBoxValue float64, hasViewBox bool) (float64, error) {
	if attr == "" || strings.HasSuffix(attr, "%") {
		if !hasViewBox {
			return 0, fmt.Errorf("length %q needs a viewBox to resolve", attr)
		}
		return viewBoxValue, nil
	}
	return lengthToPixels(attr, dpi)
}

// svg physical units per CSS, with the inch pinned to the device dpi.
var unitsPerInch = map[string]float64{
	"px": 0, // user units, no conversion
	"in": 1,
	"pt": 72,
	"pc": 6,
	"mm": 25.4,
	"cm": 2.54,
}

func lengthToPixels(s string, dpi float64) (float64, error) {
	s = strings.TrimSpace(s)
	num := s
	factor := 1.0
	for unit, per := range unitsPerInch {
		if strings.HasSuffix(s, unit) {
			num = strings.TrimSpace(strings.TrimSuffix(s, unit))
			if per > 0 {
				factor = dpi / per
			}
			break
		}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("length %q: %w", s, err)
	}
	return v * factor, nil
}
