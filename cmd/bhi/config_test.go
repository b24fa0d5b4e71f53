package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, "missing.yml"))
	require.Nil(t, err)
	assert.Equal(t, config{}, *cfg)

	cfg, err = loadConfig("")
	require.Nil(t, err)
	assert.Equal(t, config{}, *cfg)

	file := filepath.Join(dir, configFile)
	require.Nil(t, os.WriteFile(file, []byte("db: /tmp/bhi.db\naddressing: row-major\ncolors: 16\nworkers: 8\nverbose: true\n"), 0o644))

	cfg, err = loadConfig(file)
	require.Nil(t, err)
	assert.Equal(t, config{
		DB:         "/tmp/bhi.db",
		Addressing: "row-major",
		Colors:     16,
		Workers:    8,
		Verbose:    true,
	}, *cfg)

	require.Nil(t, os.WriteFile(file, []byte("format: gif\n"), 0o644))
	_, err = loadConfig(file)
	assert.NotNil(t, err)
}

func TestTrimExt(t *testing.T) {
	assert.Equal(t, "dir/image", trimExt("dir/image.png"))
	assert.Equal(t, "image", trimExt("image"))
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, io.Discard, newLogger(&config{}).Writer())
	assert.Equal(t, os.Stderr, newLogger(&config{Verbose: true}).Writer())
}
