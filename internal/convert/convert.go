package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/legend"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/mapscan"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/prefab"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/texture"
)

// DefaultPlaceholderPrefix names placeholder materials when no prefix is
// configured.
const DefaultPlaceholderPrefix = "placeholder"

// Options configures one file conversion.
type Options struct {
	ExpandPrefabs     bool
	PrefabRoot        string
	TextureMode       texture.Mode
	RemoveToolBrushes bool
	PlaceholderPrefix string
	MaxPrefabDepth    int // 0 means prefab.DefaultMaxDepth
}

// Convert runs the pipeline over inputPath and writes the converted document
// to outputPath. In placeholders mode a legend CSV is written next to the
// output whenever at least one placeholder was allocated. I/O failures are
// fatal for the file, structural oddities in the map text degrade to counted
// fallbacks instead.
func Convert(inputPath, outputPath string, opts Options) (*Stats, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}

	stats := &Stats{}
	text := StripHeader(string(data))
	text = mapscan.StripMetadataLines(text)

	if opts.ExpandPrefabs {
		exp := prefab.NewExpander(opts.PrefabRoot, filepath.Dir(inputPath))
		exp.MaxDepth = opts.MaxPrefabDepth

		var ps prefab.Stats
		text, ps = exp.Expand(text)
		stats.PrefabsFound = ps.Found
		stats.PrefabsExpanded = ps.Expanded
		stats.BrushesAdded = ps.BrushesAdded
		stats.MissingPrefabFiles = ps.MissingFiles
	}

	text, stats.ToolBrushesRemoved, stats.ToolBrushesKept = RemoveToolBrushes(text, opts.RemoveToolBrushes)
	text, stats.MeshBrushesRemoved = RemoveMeshBrushes(text)

	prefix := opts.PlaceholderPrefix
	if prefix == "" {
		prefix = DefaultPlaceholderPrefix
	}
	classifier := texture.NewClassifier(opts.TextureMode, prefix)
	text = RewriteFaces(text, classifier, stats)
	stats.PlaceholderCount = classifier.PlaceholderCount()

	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("write map file: %w", err)
	}

	if opts.TextureMode == texture.ModePlaceholders {
		if entries := classifier.Legend(); len(entries) > 0 {
			if err := legend.WriteFile(LegendPath(outputPath), entries); err != nil {
				return nil, fmt.Errorf("write placeholder legend: %w", err)
			}
		}
	}

	log.Debug().
		Str("input", inputPath).
		Str("output", outputPath).
		Msg("Pipeline finished")
	return stats, nil
}

// LegendPath returns the companion CSV path for an output map path, the
// output base name plus "_placeholder_map.csv".
func LegendPath(outputPath string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + "_placeholder_map.csv"
}
