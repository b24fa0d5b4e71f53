/*
Package text implements the textual layer of the BHI format.

A buffer is a header of the form "<width>x<height>" followed by a colon and
then one "<r>.<g>.<b>" triplet per pixel, each terminated by a comma:

	2x1:255.0.0,0.0.255,

Pixels are listed in row-major order. The comma after the final triplet
produces an empty token which marks the end of the pixel data; anything that
follows it is ignored.
*/
package text

import (
	"errors"
	"fmt"
)

const (
	headerSeparator    = ':'
	dimensionSeparator = "x"
	pixelSeparator     = ','
	channelSeparator   = "."
)

var (
	// ErrMissingHeader is returned when the buffer has no ':' separator.
	ErrMissingHeader = errors.New("text: missing header")
	// ErrMalformedDimensions is returned when the header is not two
	// unsigned integers separated by 'x'.
	ErrMalformedDimensions = errors.New("text: malformed dimensions")
	// ErrMalformedPixel is returned for a non-empty token that is not
	// three 8-bit unsigned integers separated by '.'.
	ErrMalformedPixel = errors.New("text: malformed pixel")
	// ErrSizeMismatch is returned when the number of pixels doesn't match
	// the dimensions in the header.
	ErrSizeMismatch = errors.New("text: pixel count does not match dimensions")
)

// Dimensions is the width and height of an image in pixels.
type Dimensions struct {
	Width, Height uint32
}

// Pixels returns the number of pixels an image of these dimensions holds.
func (d Dimensions) Pixels() uint64 {
	return uint64(d.Width) * uint64(d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%d%s%d", d.Width, dimensionSeparator, d.Height)
}

// Pixel is a single 8-bit RGB triplet.
type Pixel struct {
	R, G, B uint8
}

func (p Pixel) String() string {
	return fmt.Sprintf("%d.%d.%d", p.R, p.G, p.B)
}

// SizeMismatchError records the expected and actual number of pixels.
type SizeMismatchError struct {
	Want uint64
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d", ErrSizeMismatch, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrSizeMismatch) true.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}
