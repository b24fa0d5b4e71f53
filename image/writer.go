package image

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"iter"

	"github.com/bodgit/bhi/frame"
	"github.com/bodgit/bhi/text"
	"github.com/ericpauley/go-quantize/quantize"
)

var errBadColors = errors.New("image: colors must be between 0 and 256")

// Options are the encoding parameters.
type Options struct {
	// Colors limits the image to at most this many distinct colors. Zero
	// keeps every color.
	Colors int
}

// Pixels returns the pixels of m in row-major order, starting with the top
// left corner. Any alpha channel is discarded.
func Pixels(m image.Image) iter.Seq[text.Pixel] {
	return func(yield func(text.Pixel) bool) {
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
				if !yield(text.Pixel{R: c.R, G: c.G, B: c.B}) {
					return
				}
			}
		}
	}
}

// reduce returns m using no more than n colors.
func reduce(m image.Image, n int) image.Image {
	b := m.Bounds()

	// Already within the limit
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= n {
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Encode writes the Image m to w in BHI format. Options are optional; a nil
// o keeps every color.
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o != nil && o.Colors != 0 {
		if o.Colors < 0 || o.Colors > maxColors {
			return errBadColors
		}
		m = reduce(m, o.Colors)
	}

	b := m.Bounds()
	d := text.Dimensions{Width: uint32(b.Dx()), Height: uint32(b.Dy())}

	fw := frame.NewWriter(w)
	if err := text.Encode(fw, d, Pixels(m)); err != nil {
		fw.Close()
		return err
	}

	return fw.Close()
}
