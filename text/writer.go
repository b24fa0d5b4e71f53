package text

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"strconv"
)

func appendPixel(b []byte, p Pixel) []byte {
	b = strconv.AppendUint(b, uint64(p.R), 10)
	b = append(b, channelSeparator...)
	b = strconv.AppendUint(b, uint64(p.G), 10)
	b = append(b, channelSeparator...)
	b = strconv.AppendUint(b, uint64(p.B), 10)
	return append(b, pixelSeparator)
}

// Encode writes the header for d followed by every pixel yielded by pixels,
// in order. Each pixel is followed by a comma, including the last one.
func Encode(w io.Writer, d Dimensions, pixels iter.Seq[Pixel]) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(d.String()); err != nil {
		return err
	}
	if err := bw.WriteByte(headerSeparator); err != nil {
		return err
	}

	// Longest triplet is "255.255.255,"
	var tmp [12]byte
	for p := range pixels {
		if _, err := bw.Write(appendPixel(tmp[:0], p)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Marshal returns the text form of d and pixels.
func Marshal(d Dimensions, pixels iter.Seq[Pixel]) []byte {
	b := new(bytes.Buffer)
	_ = Encode(b, d, pixels)
	return b.Bytes()
}
