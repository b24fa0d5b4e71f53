package text

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a payload token.
type Kind int

const (
	// Value is a token holding a pixel.
	Value Kind = iota
	// Terminator is the empty token following the final comma.
	Terminator
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Terminator:
		return "terminator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single comma-separated element of the payload.
type Token struct {
	Kind  Kind
	Pixel Pixel
}

func parseChannel(b []byte) (uint8, bool) {
	v, err := strconv.ParseUint(string(b), 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

func parseToken(field []byte) (Token, bool) {
	if len(field) == 0 {
		return Token{Kind: Terminator}, true
	}

	r, rest, ok := bytes.Cut(field, []byte(channelSeparator))
	if !ok {
		return Token{}, false
	}
	g, b, ok := bytes.Cut(rest, []byte(channelSeparator))
	if !ok || bytes.Contains(b, []byte(channelSeparator)) {
		return Token{}, false
	}

	var p Pixel
	if p.R, ok = parseChannel(r); !ok {
		return Token{}, false
	}
	if p.G, ok = parseChannel(g); !ok {
		return Token{}, false
	}
	if p.B, ok = parseChannel(b); !ok {
		return Token{}, false
	}

	return Token{Kind: Value, Pixel: p}, true
}

// Scanner splits a payload into tokens. Scanning stops after the first
// Terminator token, after the last token or at the first malformed token.
type Scanner struct {
	payload []byte
	done    bool
	n       int
	tok     Token
	err     error
}

// NewScanner returns a Scanner reading tokens from payload, the part of a
// buffer after the header.
func NewScanner(payload []byte) *Scanner {
	return &Scanner{payload: payload}
}

// Scan advances to the next token, returning false when there are no more
// tokens or an error occurred.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	var field []byte
	if i := bytes.IndexByte(s.payload, pixelSeparator); i >= 0 {
		field, s.payload = s.payload[:i], s.payload[i+1:]
	} else {
		field, s.payload = s.payload, nil
		s.done = true
	}

	tok, ok := parseToken(field)
	if !ok {
		s.err = fmt.Errorf("%w: token %d %q", ErrMalformedPixel, s.n, field)
		s.done = true
		return false
	}
	s.n++

	if tok.Kind == Terminator {
		s.done = true
	}
	s.tok = tok

	return true
}

// Token returns the most recent token found by Scan.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// ParseHeader parses the dimensions at the start of buf and returns them
// with the remaining payload.
func ParseHeader(buf []byte) (Dimensions, []byte, error) {
	i := bytes.IndexByte(buf, headerSeparator)
	if i < 0 {
		return Dimensions{}, nil, ErrMissingHeader
	}

	header := string(buf[:i])
	fields := strings.Split(header, dimensionSeparator)
	if len(fields) != 2 {
		return Dimensions{}, nil, fmt.Errorf("%w: %q", ErrMalformedDimensions, header)
	}

	w, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Dimensions{}, nil, fmt.Errorf("%w: %q", ErrMalformedDimensions, header)
	}
	h, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Dimensions{}, nil, fmt.Errorf("%w: %q", ErrMalformedDimensions, header)
	}

	return Dimensions{Width: uint32(w), Height: uint32(h)}, buf[i+1:], nil
}

// ParsePixels returns every pixel in payload up to the first Terminator
// token. It doesn't check the number of pixels against any dimensions.
func ParsePixels(payload []byte) ([]Pixel, error) {
	return parsePixels(payload, 0)
}

func parsePixels(payload []byte, hint uint64) ([]Pixel, error) {
	// Shortest possible token is "0.0.0,"
	if limit := uint64(len(payload)/6 + 1); hint > limit {
		hint = limit
	}
	pixels := make([]Pixel, 0, hint)

	s := NewScanner(payload)
	for s.Scan() {
		tok := s.Token()
		if tok.Kind == Terminator {
			break
		}
		pixels = append(pixels, tok.Pixel)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return pixels, nil
}

// Parse parses a complete buffer, returning the dimensions and the pixels in
// the order they were written. The number of pixels must match the
// dimensions.
func Parse(buf []byte) (Dimensions, []Pixel, error) {
	d, payload, err := ParseHeader(buf)
	if err != nil {
		return Dimensions{}, nil, err
	}

	pixels, err := parsePixels(payload, d.Pixels())
	if err != nil {
		return Dimensions{}, nil, err
	}

	if uint64(len(pixels)) != d.Pixels() {
		return Dimensions{}, nil, &SizeMismatchError{Want: d.Pixels(), Got: len(pixels)}
	}

	return d, pixels, nil
}
