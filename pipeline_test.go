package bhi

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.Nil(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	writePNG(t, filepath.Join(dir, "a.png"), makeTestImage(3, 3))
	writePNG(t, filepath.Join(dir, "sub", "b.png"), makeTestImage(4, 2))
	writePNG(t, filepath.Join(dir, ".hidden", "c.png"), makeTestImage(1, 1))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("garbage"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	catalog, err := NewCatalog(filepath.Join(t.TempDir(), "bhi.db"))
	require.Nil(t, err)
	defer catalog.Close()

	var logs bytes.Buffer
	c := New(log.New(&logs, "", 0), WithCatalog(catalog))

	require.Nil(t, c.Scan(context.Background(), dir, 2))

	assert.FileExists(t, filepath.Join(dir, "a.bhi"))
	assert.FileExists(t, filepath.Join(dir, "sub", "b.bhi"))
	assert.NoFileExists(t, filepath.Join(dir, ".hidden", "c.bhi"))
	assert.NoFileExists(t, filepath.Join(dir, "broken.bhi"))
	assert.Contains(t, logs.String(), "broken.png")

	b, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.Nil(t, err)
	e, err := catalog.Lookup(fmt.Sprintf("%X", sha1.Sum(b)))
	require.Nil(t, err)
	require.NotNil(t, e)
	assert.Equal(t, filepath.Join(dir, "a.bhi"), e.Output)
	assert.Equal(t, 3, e.Width)

	// Second run skips everything already encoded
	logs.Reset()
	require.Nil(t, os.Remove(filepath.Join(dir, "sub", "b.bhi")))
	require.Nil(t, c.Scan(context.Background(), dir, 0))
	assert.Contains(t, logs.String(), "Skipping \""+filepath.Join(dir, "a.png")+"\", already encoded")
	assert.FileExists(t, filepath.Join(dir, "sub", "b.bhi"))
}

func TestScanNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	writePNG(t, file, makeTestImage(1, 1))

	c := New(nil)
	assert.ErrorIs(t, c.Scan(context.Background(), file, 1), ErrSourceUnreadable)
	assert.ErrorIs(t, c.Scan(context.Background(), filepath.Join(dir, "missing"), 1), ErrSourceUnreadable)
}

func TestFindImagesCancelled(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		writePNG(t, filepath.Join(dir, fmt.Sprintf("%d.png", i)), makeTestImage(2, 2))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing receives from files so the walk can only stop on the context
	files, errc, err := New(nil).findImages(ctx, dir)
	require.Nil(t, err)
	assert.EqualError(t, <-errc, "walk cancelled")

	_, ok := <-files
	assert.False(t, ok)
}
