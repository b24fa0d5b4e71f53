package bhi

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultWorkers is the number of images Scan encodes concurrently unless
// told otherwise.
const DefaultWorkers = 4

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s: not a directory", ErrSourceUnreadable, base)
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, this also skips the temporary files written during a conversion
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if !SupportedFormat(extension(file)) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// scanImage encodes file next to itself unless the catalog shows it has
// already been encoded and the output still exists.
func (c *Converter) scanImage(file string) error {
	b, err := readSource(file)
	if err != nil {
		return err
	}

	if c.catalog != nil {
		e, err := c.catalog.Lookup(fmt.Sprintf("%X", sha1.Sum(b)))
		if err != nil {
			return err
		}
		if e != nil {
			if _, err := os.Stat(e.Output); err == nil {
				c.logger.Printf("Skipping \"%s\", already encoded as \"%s\"\n", file, e.Output)
				return nil
			}
		}
	}

	_, err = c.encode(file, b, strings.TrimSuffix(file, filepath.Ext(file)))
	return err
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := c.scanImage(file); err != nil {
				// A file that can't be decoded shouldn't stop the rest
				if errors.Is(err, ErrSourceUnreadable) {
					c.logger.Printf("Skipping \"%s\": %v\n", file, err)
					continue
				}
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and encodes every supported image found to a BHI file
// alongside it, using the given number of workers. Hidden files and
// directories are ignored, as are images that can't be decoded.
func (c *Converter) Scan(ctx context.Context, path string, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.imageWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
