/*
Package terminal paints decoded images on a truecolor terminal.

Each pixel is drawn as two spaces with a 24-bit background color so that
pixels appear roughly square. Images wider than the terminal are subsampled
to fit.
*/
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/bhi/text"
	"golang.org/x/term"
)

const (
	block = "  "
	reset = "\x1b[0m"
)

// Painter writes images to Out. If Columns is greater than zero the image is
// subsampled to fit within that many character cells.
type Painter struct {
	Out     io.Writer
	Columns int
}

// New returns a Painter for stdout sized to the terminal, or unbounded if
// stdout isn't a terminal.
func New() *Painter {
	p := &Painter{Out: os.Stdout}
	if cols, _, err := Size(int(os.Stdout.Fd())); err == nil {
		p.Columns = cols
	}
	return p
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Size returns the size of the terminal fd in character cells.
func Size(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}

func (p *Painter) step(width int) int {
	if p.Columns <= 0 || width*len(block) <= p.Columns {
		return 1
	}
	cells := p.Columns / len(block)
	if cells < 1 {
		cells = 1
	}
	return (width + cells - 1) / cells
}

// Paint draws every pixel returned by at, row by row.
func (p *Painter) Paint(d text.Dimensions, at func(c, r int) (text.Pixel, error)) error {
	w, h := int(d.Width), int(d.Height)
	step := p.step(w)

	bw := bufio.NewWriter(p.Out)
	for r := 0; r < h; r += step {
		var last *text.Pixel
		for c := 0; c < w; c += step {
			px, err := at(c, r)
			if err != nil {
				return err
			}
			if last == nil || *last != px {
				fmt.Fprintf(bw, "\x1b[48;2;%d;%d;%dm", px.R, px.G, px.B)
				last = &px
			}
			bw.WriteString(block)
		}
		bw.WriteString(reset + "\n")
	}

	return bw.Flush()
}
