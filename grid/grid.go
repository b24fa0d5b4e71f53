/*
Package grid maps the flat pixel sequence of a BHI buffer back onto a two
dimensional raster.

Two addressing modes are provided. Legacy reproduces the mapping used by the
existing BHI tools: every pixel in row 0 reads the first element of the
sequence and every other row reads the data of the row above it, so
(c, r) maps to (r-1)*width + c. Images round trip through Legacy with their
top row collapsed and shifted down by one row, but output matches what the
existing tools produce for the same file. RowMajor is the true inverse of the
order pixels are written in, r*width + c.
*/
package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/bhi/text"
)

// Mode selects how a coordinate is turned into a sequence index.
type Mode int

const (
	// Legacy is compatible with the existing BHI tools.
	Legacy Mode = iota
	// RowMajor inverts the order pixels are serialized in.
	RowMajor
)

var modeNames = map[Mode]string{
	Legacy:   "legacy",
	RowMajor: "row-major",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("grid: unknown addressing mode %q", s)
}

// ErrIndexOutOfRange is returned when a coordinate maps outside the pixel
// sequence.
var ErrIndexOutOfRange = errors.New("grid: index out of range")

// IndexOutOfRangeError records the coordinate that couldn't be resolved.
type IndexOutOfRangeError struct {
	Col, Row int
	Index    int
	Len      int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: (%d, %d) maps to %d, length %d", ErrIndexOutOfRange, e.Col, e.Row, e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) true.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Index returns the position in the pixel sequence holding the pixel at
// column c and row r of an image width pixels wide.
func Index(mode Mode, c, r, width int) int {
	if mode == RowMajor {
		return r*width + c
	}
	if r == 0 {
		return 0
	}
	return r*width - (width - c)
}

// Grid is a read-only view over a parsed pixel sequence.
type Grid struct {
	Dimensions text.Dimensions
	Pixels     []text.Pixel
	Mode       Mode
}

// New returns a Grid over pixels.
func New(d text.Dimensions, pixels []text.Pixel, mode Mode) *Grid {
	return &Grid{
		Dimensions: d,
		Pixels:     pixels,
		Mode:       mode,
	}
}

// At returns the pixel displayed at column c and row r.
func (g *Grid) At(c, r int) (text.Pixel, error) {
	w, h := int(g.Dimensions.Width), int(g.Dimensions.Height)
	if c < 0 || c >= w || r < 0 || r >= h {
		return text.Pixel{}, &IndexOutOfRangeError{Col: c, Row: r, Index: -1, Len: len(g.Pixels)}
	}

	i := Index(g.Mode, c, r, w)
	if i < 0 || i >= len(g.Pixels) {
		return text.Pixel{}, &IndexOutOfRangeError{Col: c, Row: r, Index: i, Len: len(g.Pixels)}
	}

	return g.Pixels[i], nil
}

// Image returns the grid as an opaque RGBA image.
func (g *Grid) Image() (*image.RGBA, error) {
	w, h := int(g.Dimensions.Width), int(g.Dimensions.Height)
	m := image.NewRGBA(image.Rect(0, 0, w, h))

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			p, err := g.At(x, y)
			if err != nil {
				return nil, err
			}
			m.SetRGBA(x, y, color.RGBA{p.R, p.G, p.B, 0xff})
		}
	}

	return m, nil
}
