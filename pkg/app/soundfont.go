package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zurustar/gosmf/pkg/fileutil"
)

// DefaultSoundFontName is the SoundFont filename searched for when no
// explicit path is given.
const DefaultSoundFontName = "GeneralUser-GS.sf2"

// findSoundFont resolves the SoundFont to render with, in order:
// 1. The explicitly configured path (flag or SOUNDFONT env), resolved
// case-insensitively.
// 2. DefaultSoundFontName in the current directory.
func findSoundFont(configured string) (string, error) {
	if configured != "" {
		return fileutil.ResolvePath(configured)
	}
	if _, err := os.Stat(DefaultSoundFontName); err == nil {
		return DefaultSoundFontName, nil
	}
	if path, err := fileutil.FindFileCaseInsensitive(".", DefaultSoundFontName); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no SoundFont found: pass -s or place %s in %s",
		DefaultSoundFontName, mustWorkingDir())
}

func mustWorkingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return filepath.Clean(dir)
}
