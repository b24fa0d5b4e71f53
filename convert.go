package bhi

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/bhi/grid"
	bhiimage "github.com/bodgit/bhi/image"
)

// writeFile writes path via a temporary file in the same directory which is
// renamed into place only if fn succeeds, so a failed conversion never
// leaves partial output behind.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}

	return nil
}

func readSource(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, file, err)
	}

	return b, nil
}

func (c *Converter) encode(file string, b []byte, name string) (string, error) {
	m, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, file, err)
	}
	c.logger.Printf("Read %s image \"%s\" (%dx%d)\n", format, file, m.Bounds().Dx(), m.Bounds().Dy())

	out := name + bhiimage.Extension
	if err := writeFile(out, func(w io.Writer) error {
		return bhiimage.Encode(w, m, &bhiimage.Options{Colors: c.colors})
	}); err != nil {
		return "", err
	}
	c.logger.Printf("Saved file \"%s\"\n", out)

	if c.catalog != nil {
		if err := c.catalog.Record(Entry{
			SHA1:   fmt.Sprintf("%X", sha1.Sum(b)),
			Source: file,
			Output: out,
			Width:  m.Bounds().Dx(),
			Height: m.Bounds().Dy(),
			Colors: c.colors,
		}); err != nil {
			return "", err
		}
	}

	return out, nil
}

// Encode converts the image in file to BHI format and writes it to name
// with a ".bhi" extension added, returning the path written. The extension
// of file must be one of the supported formats.
func (c *Converter) Encode(file, name string) (string, error) {
	if ext := extension(file); !SupportedFormat(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	b, err := readSource(file)
	if err != nil {
		return "", err
	}

	return c.encode(file, b, name)
}

func (c *Converter) load(file string) (*grid.Grid, error) {
	b, err := readSource(file)
	if err != nil {
		return nil, err
	}

	g, err := bhiimage.DecodeGrid(bytes.NewReader(b), c.mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	c.logger.Printf("Read %s BHI file \"%s\" with %d pixels\n", g.Dimensions, file, len(g.Pixels))

	return g, nil
}

// Decode converts the BHI file to format and writes it to name with the
// format added as an extension, returning the path written. Nothing is
// written if any part of the conversion fails.
func (c *Converter) Decode(file, name, format string) (string, error) {
	enc, ok := encoders[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	g, err := c.load(file)
	if err != nil {
		return "", err
	}

	m, err := g.Image()
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	c.logger.Printf("Mapped %s image using %s addressing\n", g.Dimensions, g.Mode)

	out := name + "." + format
	if err := writeFile(out, func(w io.Writer) error {
		return enc(w, m)
	}); err != nil {
		return "", err
	}
	c.logger.Printf("Saved file \"%s\"\n", out)

	return out, nil
}

// Render decodes the BHI file and passes its pixels to p.
func (c *Converter) Render(file string, p Painter) error {
	g, err := c.load(file)
	if err != nil {
		return err
	}

	if err := p.Paint(g.Dimensions, g.At); err != nil {
		return err
	}
	c.logger.Printf("Finished rendering %s\n", g.Dimensions)

	return nil
}
