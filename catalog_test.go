package bhi

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "bhi.db"))
	require.Nil(t, err)
	defer c.Close()

	e, err := c.Lookup("DEADBEEF")
	require.Nil(t, err)
	assert.Nil(t, e)

	want := Entry{
		SHA1:   "DEADBEEF",
		Source: "image.png",
		Output: "image.bhi",
		Width:  64,
		Height: 40,
	}
	require.Nil(t, c.Record(want))

	e, err = c.Lookup("DEADBEEF")
	require.Nil(t, err)
	require.NotNil(t, e)
	assert.Equal(t, want, *e)

	// Replaces the previous entry
	want.Output = "other.bhi"
	want.Colors = 16
	require.Nil(t, c.Record(want))

	e, err = c.Lookup("DEADBEEF")
	require.Nil(t, err)
	assert.Equal(t, want, *e)
}
