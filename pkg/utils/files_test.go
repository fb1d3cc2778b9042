package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rom = bytes.Repeat([]byte{0xC3, 0x50, 0x01, 0x00}, 64)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadFile_Raw(t *testing.T) {
	for _, name := range []string{"game.gb", "boot.bin", "noext"} {
		b, err := LoadFile(writeTemp(t, name, rom))
		require.NoError(t, err)
		assert.Equal(t, rom, b, name)
	}
}

func TestLoadFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(rom)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := LoadFile(writeTemp(t, "game.gb.gz", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, rom, b)
}

func TestLoadFile_Zip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("game.gb")
	require.NoError(t, err)
	_, err = f.Write(rom)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := LoadFile(writeTemp(t, "game.ZIP", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, rom, b)

	var empty bytes.Buffer
	require.NoError(t, zip.NewWriter(&empty).Close())
	_, err = LoadFile(writeTemp(t, "empty.zip", empty.Bytes()))
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestLoadFile_Corrupt(t *testing.T) {
	for _, name := range []string{"game.gz", "game.zip", "game.7z"} {
		_, err := LoadFile(writeTemp(t, name, []byte("not an archive")))
		assert.Error(t, err, name)
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sav")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFile(path, []byte("new")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, -128, Clamp(-128, -300, 127))
	assert.Equal(t, 127, Clamp(-128, 300, 127))
	assert.Equal(t, 0.5, Clamp(0.0, 0.5, 1.0))
}
