/*
Package bhi is a library for converting images to and from the BHI format.

BHI stores an image as a Snappy framed text buffer listing the dimensions
and every pixel as a decimal RGB triplet. Converter reads and writes BHI
files, converts them to and from JPEG, PNG, ICO, BMP and TIFF, hands decoded
pixels to a Painter for display and batch converts whole directories,
optionally recording each conversion in a Catalog.
*/
package bhi

import (
	"errors"
	"io"
	"log"

	"github.com/bodgit/bhi/grid"
	"github.com/bodgit/bhi/text"
)

var (
	// ErrSourceUnreadable is returned when an input file can't be opened,
	// read or decoded.
	ErrSourceUnreadable = errors.New("bhi: source unreadable")
	// ErrDestinationUnwritable is returned when an output file can't be
	// created or written.
	ErrDestinationUnwritable = errors.New("bhi: destination unwritable")
	// ErrUnsupportedFormat is returned for file extensions and target
	// formats outside of the supported set.
	ErrUnsupportedFormat = errors.New("bhi: unsupported format")
)

// Painter is implemented by anything that can display a decoded image. at
// returns the pixel to draw at column c and row r.
type Painter interface {
	Paint(d text.Dimensions, at func(c, r int) (text.Pixel, error)) error
}

// Converter converts images to and from BHI files.
type Converter struct {
	logger  *log.Logger
	mode    grid.Mode
	colors  int
	catalog *Catalog
}

// Option configures a Converter.
type Option func(*Converter)

// WithAddressing sets how decoded pixels are mapped onto the image. The
// default is grid.Legacy.
func WithAddressing(mode grid.Mode) Option {
	return func(c *Converter) {
		c.mode = mode
	}
}

// WithColors limits encoded images to at most n colors. Zero, the default,
// keeps every color.
func WithColors(n int) Option {
	return func(c *Converter) {
		c.colors = n
	}
}

// WithCatalog records every encoded image in catalog.
func WithCatalog(catalog *Catalog) Option {
	return func(c *Converter) {
		c.catalog = catalog
	}
}

// New returns a Converter logging progress to logger. A nil logger discards
// everything.
func New(logger *log.Logger, options ...Option) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	c := &Converter{
		logger: logger,
		mode:   grid.Legacy,
	}
	for _, o := range options {
		o(c)
	}

	return c
}
