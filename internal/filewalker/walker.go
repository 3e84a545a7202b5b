package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// MapExtension is the only file type the converter handles.
const MapExtension = ".map"

// Walker traverses directories and collects convertible map sources.
type Walker struct{}

// NewWalker creates a Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// FileEntry represents a discovered file ready for conversion.
type FileEntry struct {
	Path    string // absolute path
	RelPath string // path relative to the walked root, for output mirroring
}

// Walk discovers all map files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != MapExtension {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot relativize path")
			return nil
		}

		entries = append(entries, FileEntry{Path: path, RelPath: rel})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered map files")
	return entries, nil
}
