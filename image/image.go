/*
Package image implements a BHI image decoder and encoder.

A BHI file is a Snappy framed stream wrapping a text buffer; see packages
frame and text for the two layers. Pixels are written in row-major order
with the alpha channel dropped. On decode the flat pixel sequence is mapped
back onto the raster by package grid, using the Legacy addressing mode
unless DecodeGrid is used with another mode.

Importing this package registers the "bhi" format with image.Decode.
*/
package image

import (
	"image"

	"github.com/bodgit/bhi/frame"
)

// Extension is the file extension used for BHI files.
const Extension = ".bhi"

// maxColors is the largest palette the quantizer is asked to produce.
const maxColors = 256

func init() {
	image.RegisterFormat("bhi", frame.Magic, Decode, DecodeConfig)
}
