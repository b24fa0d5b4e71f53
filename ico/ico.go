/*
Package ico implements a minimal Windows icon decoder and encoder.

Only icons holding a PNG payload are supported. An encoded icon contains a
single image: the 6 byte ICONDIR header, one 16 byte ICONDIRENTRY and the PNG
stream. When decoding, the first directory entry is used.
*/
package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"
)

const (
	magic       = "\x00\x00\x01\x00"
	dirSize     = 6
	entrySize   = 16
	pngMagic    = "\x89PNG\r\n\x1a\n"
	maxIconSize = 256
	typeIcon    = 1
	bitCount    = 32
)

var (
	errBadMagic  = errors.New("ico: invalid format")
	errNoImages  = errors.New("ico: no images")
	errBadOffset = errors.New("ico: invalid image offset")
	errTooLarge  = errors.New("ico: image is too large")

	// ErrUnsupported is returned for icons holding a BMP payload.
	ErrUnsupported = errors.New("ico: only PNG payloads are supported")
)

func init() {
	image.RegisterFormat("ico", magic, Decode, DecodeConfig)
}

type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type iconDirEntry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

type decoder struct {
	dir   iconDir
	entry iconDirEntry
	data  []byte
}

func (d *decoder) decode(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	br := bytes.NewReader(b)
	if err := binary.Read(br, binary.LittleEndian, &d.dir); err != nil {
		return errBadMagic
	}
	if d.dir.Reserved != 0 || d.dir.Type != typeIcon {
		return errBadMagic
	}
	if d.dir.Count == 0 {
		return errNoImages
	}
	if err := binary.Read(br, binary.LittleEndian, &d.entry); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}

	start, end := uint64(d.entry.Offset), uint64(d.entry.Offset)+uint64(d.entry.Size)
	if start < dirSize+entrySize || end > uint64(len(b)) {
		return errBadOffset
	}
	d.data = b[start:end]

	if !bytes.HasPrefix(d.data, []byte(pngMagic)) {
		return ErrUnsupported
	}

	return nil
}

// Decode reads an icon from r and returns its first image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(d.data))
}

// DecodeConfig returns the color model and dimensions of the first image in
// an icon without decoding it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return image.Config{}, err
	}
	return png.DecodeConfig(bytes.NewReader(d.data))
}

// Encode writes the Image m to w as a single image icon. Icons are limited
// to 256 by 256 pixels.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() > maxIconSize || b.Dy() > maxIconSize {
		return errTooLarge
	}

	payload := new(bytes.Buffer)
	if err := png.Encode(payload, m); err != nil {
		return err
	}

	// A width or height of 0 means 256
	entry := iconDirEntry{
		Width:    uint8(b.Dx() % maxIconSize),
		Height:   uint8(b.Dy() % maxIconSize),
		Planes:   1,
		BitCount: bitCount,
		Size:     uint32(payload.Len()),
		Offset:   dirSize + entrySize,
	}

	if err := binary.Write(w, binary.LittleEndian, iconDir{Type: typeIcon, Count: 1}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}
