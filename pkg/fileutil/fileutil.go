// Package fileutil provides file system helpers for locating MIDI and
// SoundFont files.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindFileCaseInsensitive searches dir for a file whose name matches
// filename ignoring case. MIDI files and SoundFonts frequently arrive
// from archives produced on case-insensitive file systems, where
// "SONG.MID" and "song.mid" name the same file.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	searchName := strings.ToLower(filename)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(entry.Name()) == searchName {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}

// ResolvePath returns path if it exists, otherwise retries the final
// path element case-insensitively within its directory.
func ResolvePath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
}
