package image

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/bhi/frame"
	"github.com/bodgit/bhi/grid"
	"github.com/bodgit/bhi/text"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	mode grid.Mode

	dimensions text.Dimensions
	grid       *grid.Grid

	// Enough to hold the stream identifier
	tmp [len(frame.Magic)]byte
}

// stream checks the stream identifier and returns a reader over the
// decompressed contents.
func (d *decoder) stream(r io.Reader) (io.Reader, error) {
	if err := readFull(r, d.tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, frame.ErrCorrupt
	}
	if !frame.Valid(d.tmp[:]) {
		return nil, frame.ErrCorrupt
	}
	return frame.NewReader(io.MultiReader(bytes.NewReader(d.tmp[:]), r)), nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	fr, err := d.stream(r)
	if err != nil {
		return err
	}

	if configOnly {
		header, err := bufio.NewReader(fr).ReadBytes(':')
		if err != nil && err != io.EOF {
			return err
		}
		d.dimensions, _, err = text.ParseHeader(header)
		return err
	}

	buf, err := io.ReadAll(fr)
	if err != nil {
		return err
	}

	dimensions, pixels, err := text.Parse(buf)
	if err != nil {
		return err
	}

	d.dimensions = dimensions
	d.grid = grid.New(dimensions, pixels, d.mode)

	return nil
}

// DecodeGrid reads a BHI file from r and returns the parsed pixels, mapped
// with the given addressing mode.
func DecodeGrid(r io.Reader, mode grid.Mode) (*grid.Grid, error) {
	d := decoder{mode: mode}
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.grid, nil
}

// Decode reads a BHI file from r and returns it as an image.Image, using
// Legacy addressing.
func Decode(r io.Reader) (image.Image, error) {
	g, err := DecodeGrid(r, grid.Legacy)
	if err != nil {
		return nil, err
	}
	return g.Image()
}

// DecodeConfig returns the color model and dimensions of a BHI file without
// parsing the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(d.dimensions.Width),
		Height:     int(d.dimensions.Height),
	}, nil
}
