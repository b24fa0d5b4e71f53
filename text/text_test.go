package text

import (
	"bytes"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	pixels := []Pixel{{1, 2, 3}, {255, 0, 128}}

	b := Marshal(Dimensions{2, 1}, slices.Values(pixels))
	assert.Equal(t, "2x1:1.2.3,255.0.128,", string(b))

	b = Marshal(Dimensions{0, 0}, slices.Values([]Pixel(nil)))
	assert.Equal(t, "0x0:", string(b))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestEncodeWriteError(t *testing.T) {
	pixels := make([]Pixel, 4096)
	err := Encode(failWriter{}, Dimensions{64, 64}, slices.Values(pixels))
	assert.EqualError(t, err, "write failed")
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		d := Dimensions{uint32(r.Intn(16) + 1), uint32(r.Intn(16) + 1)}
		pixels := make([]Pixel, d.Pixels())
		for j := range pixels {
			pixels[j] = Pixel{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))}
		}

		gotD, gotPixels, err := Parse(Marshal(d, slices.Values(pixels)))
		require.Nil(t, err)
		assert.Equal(t, d, gotD)
		assert.Equal(t, pixels, gotPixels)
	}
}

func TestParseHeader(t *testing.T) {
	d, payload, err := ParseHeader([]byte("10x20:1.2.3,"))
	require.Nil(t, err)
	assert.Equal(t, Dimensions{10, 20}, d)
	assert.Equal(t, "1.2.3,", string(payload))

	d, payload, err = ParseHeader([]byte("0x5:,"))
	require.Nil(t, err)
	assert.Equal(t, Dimensions{0, 5}, d)
	assert.Equal(t, ",", string(payload))

	tables := map[string]error{
		"10x20":          ErrMissingHeader,
		"":               ErrMissingHeader,
		"10:1.2.3,":      ErrMalformedDimensions,
		"10x20x30:":      ErrMalformedDimensions,
		"ax20:":          ErrMalformedDimensions,
		"10x-1:":         ErrMalformedDimensions,
		"x:":             ErrMalformedDimensions,
		"4294967296x1:":  ErrMalformedDimensions,
		"10 x 20:1.2.3,": ErrMalformedDimensions,
	}

	for in, want := range tables {
		t.Run(in, func(t *testing.T) {
			_, _, err := ParseHeader([]byte(in))
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestParsePixels(t *testing.T) {
	tables := []struct {
		payload string
		want    []Pixel
	}{
		{"1.2.3,4.5.6,", []Pixel{{1, 2, 3}, {4, 5, 6}}},
		{"1.2.3,,4.5.6,", []Pixel{{1, 2, 3}}},
		{"1.2.3,4.5.6", []Pixel{{1, 2, 3}, {4, 5, 6}}},
		{",", []Pixel{}},
		{"", []Pixel{}},
		{"1.2.3,,garbage", []Pixel{{1, 2, 3}}},
	}

	for _, table := range tables {
		t.Run(table.payload, func(t *testing.T) {
			pixels, err := ParsePixels([]byte(table.payload))
			require.Nil(t, err)
			assert.Equal(t, table.want, pixels)
		})
	}
}

func TestParsePixelsMalformed(t *testing.T) {
	tables := []string{
		"1.2,",
		"1.2.256,",
		"1.2.3.4,",
		"1..3,",
		"a.b.c,",
		"1.2.3,-1.2.3,",
		" 1.2.3,",
		"1.2.3,4.5",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			_, err := ParsePixels([]byte(table))
			assert.ErrorIs(t, err, ErrMalformedPixel)
		})
	}
}

func TestScanner(t *testing.T) {
	s := NewScanner([]byte("1.2.3,,4.5.6,"))

	require.True(t, s.Scan())
	assert.Equal(t, Token{Kind: Value, Pixel: Pixel{1, 2, 3}}, s.Token())

	require.True(t, s.Scan())
	assert.Equal(t, Terminator, s.Token().Kind)

	assert.False(t, s.Scan())
	assert.Nil(t, s.Err())

	s = NewScanner([]byte("1.2.3,1.2,"))
	require.True(t, s.Scan())
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), ErrMalformedPixel)
	assert.Contains(t, s.Err().Error(), "token 1")
	assert.False(t, s.Scan())
}

func TestParse(t *testing.T) {
	d, pixels, err := Parse([]byte("2x1:1.2.3,4.5.6,"))
	require.Nil(t, err)
	assert.Equal(t, Dimensions{2, 1}, d)
	assert.Equal(t, []Pixel{{1, 2, 3}, {4, 5, 6}}, pixels)

	d, pixels, err = Parse([]byte("0x5:,"))
	require.Nil(t, err)
	assert.Equal(t, Dimensions{0, 5}, d)
	assert.Empty(t, pixels)

	_, _, err = Parse([]byte("2x2:1.2.3,4.5.6,"))
	require.ErrorIs(t, err, ErrSizeMismatch)
	var sizeErr *SizeMismatchError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, uint64(4), sizeErr.Want)
	assert.Equal(t, 2, sizeErr.Got)

	_, _, err = Parse([]byte("1x1:1.2.3,,4.5.6,"))
	assert.Nil(t, err)

	_, _, err = Parse([]byte("1x1:1.2.256,"))
	assert.ErrorIs(t, err, ErrMalformedPixel)

	_, _, err = Parse(bytes.Repeat([]byte("1"), 10))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "value", Value.String())
	assert.Equal(t, "terminator", Terminator.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
