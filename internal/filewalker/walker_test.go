package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"town.map":                 "{}",
		"notes.txt":                "ignore",
		"mp/crossing.MAP":          "{}",
		"mp/sub/depot.map":         "{}",
		"mp/depot_placeholder.csv": "ignore",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)

	rels := make([]string, 0, len(entries))
	for _, e := range entries {
		assert.True(t, filepath.IsAbs(e.Path))
		rels = append(rels, filepath.ToSlash(e.RelPath))
	}
	assert.ElementsMatch(t, []string{"town.map", "mp/crossing.MAP", "mp/sub/depot.map"}, rels)
}

func TestWalkRejectsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "single.map")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := NewWalker().Walk(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := NewWalker().Walk(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
