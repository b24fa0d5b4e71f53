/*
Package frame implements the compressed container wrapped around every BHI
file.

The container is the Snappy framing format: a stream identifier chunk
followed by compressed or uncompressed data chunks, each carrying a masked
CRC-32C of its uncompressed contents. Streams written by the S2 extension of
the format are also accepted when reading.
*/
package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
)

const (
	// Magic is the stream identifier chunk every Snappy framed stream starts
	// with.
	Magic = "\xff\x06\x00\x00sNaPpY"

	magicS2 = "\xff\x06\x00\x00S2sTwO"
)

// ErrCorrupt is returned when the input is not a valid, complete frame.
var ErrCorrupt = errors.New("frame: corrupt input")

// NewWriter returns a writer that compresses everything written to it into
// w. The stream is not complete until Close is called.
func NewWriter(w io.Writer) *s2.Writer {
	return s2.NewWriter(w, s2.WriterSnappyCompat(), s2.WriterConcurrency(1))
}

// NewReader returns a reader that decompresses the stream read from r.
func NewReader(r io.Reader) io.Reader {
	return &reader{r: s2.NewReader(r)}
}

type reader struct {
	r *s2.Reader
}

// corrupt reports whether err comes from the decoder rejecting the stream
// rather than from the underlying reader.
func corrupt(err error) bool {
	switch err {
	case s2.ErrCorrupt, s2.ErrCRC, s2.ErrUnsupported, s2.ErrTooLarge, io.ErrUnexpectedEOF:
		return true
	}
	return false
}

// Read wraps decoder failures with ErrCorrupt. Errors from the underlying
// reader are returned unchanged.
func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && corrupt(err) {
		err = fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return n, err
}

// Valid reports whether b starts with a stream identifier chunk.
func Valid(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Magic)) || bytes.HasPrefix(b, []byte(magicS2))
}

// Compress returns raw wrapped in a fully flushed frame.
func Compress(raw []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	w := NewWriter(b)
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress returns the contents of framed. A missing stream identifier,
// truncated chunk or checksum mismatch results in ErrCorrupt.
func Decompress(framed []byte) ([]byte, error) {
	if !Valid(framed) {
		return nil, fmt.Errorf("%w: missing stream identifier", ErrCorrupt)
	}
	return io.ReadAll(NewReader(bytes.NewReader(framed)))
}
