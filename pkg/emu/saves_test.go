package emu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaves(t *testing.T) {
	dir := t.TempDir()
	s := NewSaves(dir, "POKEMON RED", []byte{1, 2, 3})
	assert.Equal(t, dir, filepath.Dir(s.Dir))
	assert.Regexp(t, `^POKEMON_RED-[0-9a-f]{16}$`, filepath.Base(s.Dir))

	ram, err := s.Latest()
	require.NoError(t, err)
	assert.Nil(t, ram, "expected no save before the first write")

	s.now = func() time.Time { return time.Unix(100, 0) }
	_, err = s.Write([]byte{0xAA})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Unix(200, 0) }
	path, err := s.Write([]byte{0xBB})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir, "200.sav"), path)

	// not a save
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "notes.txt"), []byte("hi"), 0644))

	saves, err := s.List()
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, int64(200), saves[0].Timestamp)
	assert.Equal(t, int64(100), saves[1].Timestamp)

	ram, err = s.Latest()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBB}, ram)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "expected no temporary files left behind")
}

func TestSaves_FolderPerROM(t *testing.T) {
	dir := t.TempDir()
	a := NewSaves(dir, "TETRIS", []byte{1})
	b := NewSaves(dir, "TETRIS", []byte{2})
	assert.NotEqual(t, a.Dir, b.Dir)

	assert.Equal(t, "untitled", folderName("???"))
	assert.Equal(t, "a_b-c", folderName("a b-c/"))
}

func TestParseTimestampFromFilename(t *testing.T) {
	assert.Equal(t, int64(1690000000), parseTimestampFromFilename("1690000000.sav"))
	assert.Equal(t, int64(42), parseTimestampFromFilename("game.42.sav"))
	assert.Equal(t, int64(0), parseTimestampFromFilename("game.sav"))
}
