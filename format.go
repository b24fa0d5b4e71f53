package bhi

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/bhi/ico"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type encodeFunc func(io.Writer, image.Image) error

var encoders = map[string]encodeFunc{
	"jpg": func(w io.Writer, m image.Image) error {
		return jpeg.Encode(w, m, nil)
	},
	"png": png.Encode,
	"ico": ico.Encode,
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, m image.Image) error {
		return tiff.Encode(w, m, nil)
	},
}

// SupportedFormat reports whether format, a lowercase file extension without
// the leading dot, is one of the standard formats BHI converts to and from.
func SupportedFormat(format string) bool {
	_, ok := encoders[format]
	return ok
}

// Formats returns the supported formats in alphabetical order.
func Formats() []string {
	formats := make([]string, 0, len(encoders))
	for f := range encoders {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

func extension(file string) string {
	return strings.TrimPrefix(filepath.Ext(file), ".")
}
