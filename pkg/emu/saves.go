// Package emu persists the battery backed RAM of cartridges between
// runs. Every cartridge gets its own folder in the save folder, and
// every save is a raw dump of the cartridge RAM named after the time
// it was written. The newest save is loaded on start up.
package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// save file naming convention:
// <save folder>/<title>-<xxhash of the rom>/<timestamp>.sav

// Save represents a save file.
type Save struct {
	Path      string // the path to the save file
	Timestamp int64  // seconds since the Unix epoch
}

// Saves is the save folder of a single cartridge.
type Saves struct {
	Dir string

	now func() time.Time
}

// NewSaves returns the saves of the cartridge rom with the given
// title, kept below dir. The folder is created on the first write.
func NewSaves(dir, title string, rom []byte) *Saves {
	return &Saves{
		Dir: filepath.Join(dir, fmt.Sprintf("%s-%016x", folderName(title), xxhash.Sum64(rom))),
		now: time.Now,
	}
}

// folderName strips everything but letters, digits, dashes and
// underscores from a cartridge title.
func folderName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, title)
	if name == "" {
		return "untitled"
	}
	return name
}

// List returns the save files of the cartridge, the newest first. A
// missing save folder holds no saves.
func (s *Saves) List() ([]Save, error) {
	files, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	saves := make([]Save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isFileSaveFile(file.Name()) {
			continue
		}
		saves = append(saves, Save{
			Path:      filepath.Join(s.Dir, file.Name()),
			Timestamp: parseTimestampFromFilename(file.Name()),
		})
	}

	// sort the save files by timestamp
	sort.SliceStable(saves, func(i, j int) bool {
		return saves[i].Timestamp > saves[j].Timestamp
	})
	return saves, nil
}

// Latest returns the contents of the newest save file, or nil if the
// cartridge was never saved.
func (s *Saves) Latest() ([]byte, error) {
	saves, err := s.List()
	if err != nil || len(saves) == 0 {
		return nil, err
	}
	return utils.LoadFile(saves[0].Path)
}

// Write stores ram as a new save file and returns its path. The file
// is written to a temporary file first and renamed once complete, so
// a crash never corrupts a save.
func (s *Saves) Write(ram []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%d.sav", s.now().Unix()))
	if err := utils.WriteFile(path, ram); err != nil {
		return "", fmt.Errorf("emu: writing save: %w", err)
	}
	return path, nil
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<...>.<timestamp>.sav".
// Where <timestamp> is the number of seconds since the Unix epoch,
// and <...> is any string.
func parseTimestampFromFilename(filename string) int64 {
	// strip the file extension
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// get the timestamp from the filename (the last part preceded by a dot)
	parts := strings.Split(filename, ".")
	n, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// isFileSaveFile returns true if the given filename is a save file.
func isFileSaveFile(filename string) bool {
	return strings.HasSuffix(filename, ".sav")
}
