package convert

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/mapscan"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/texture"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/textutil"
)

// StripHeader discards everything before the document's first opening brace,
// dropping source-dialect preamble lines like version markers. A document
// with no brace at all strips to nothing.
func StripHeader(text string) string {
	if idx := strings.IndexByte(text, '{'); idx >= 0 {
		return text[idx:]
	}
	return ""
}

// meshKeywords flag mesh and patch geometry that has no brush equivalent in
// the target format.
var meshKeywords = []string{"mesh", "curve", "patchdef2", "patchdef3", "patchterraindef3"}

// RemoveMeshBrushes drops world-entity blocks that contain a mesh or patch
// directive on any non-comment line. Returns the rewritten document and the
// number of blocks dropped.
func RemoveMeshBrushes(text string) (string, int) {
	return filterWorldBlocks(text, func(block []textutil.Line) bool {
		return hasMeshDirective(block)
	})
}

func hasMeshDirective(block []textutil.Line) bool {
	for _, ln := range block {
		trimmed := strings.TrimSpace(ln.Text)
		if strings.HasPrefix(trimmed, "//") {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range meshKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// RemoveToolBrushes classifies every world brush by its first caulk or tool
// face. Tool brushes are dropped when remove is set, otherwise counted as
// kept. A brush whose first classified face is caulk is never a tool brush,
// whatever comes after.
func RemoveToolBrushes(text string, remove bool) (out string, removed, kept int) {
	out, removed = filterWorldBlocks(text, func(block []textutil.Line) bool {
		if !isToolBrush(block) {
			return false
		}
		if remove {
			return true
		}
		kept++
		return false
	})
	return out, removed, kept
}

// isToolBrush scans a block's face tokens in order. The first caulk face
// preserves the brush, otherwise the first tool-table match marks it.
func isToolBrush(block []textutil.Line) bool {
	for _, ln := range block {
		face, ok := mapscan.ParseFace(ln.Text)
		if !ok || face.Token == "" {
			continue
		}
		token := texture.Normalize(face.Token)
		if texture.IsCaulk(token) {
			return false
		}
		if _, _, ok := texture.ToolTarget(token); ok {
			return true
		}
	}
	return false
}

// filterWorldBlocks rebuilds the document with the world-entity blocks for
// which remove returns true dropped. Blocks in other entities and blocks
// left unterminated by a damaged file are never considered.
func filterWorldBlocks(text string, remove func([]textutil.Line) bool) (string, int) {
	ents := mapscan.Entities(text)
	if len(ents) == 0 {
		return text, 0
	}

	world := ents[0]
	lines := textutil.SplitLines(world.Raw)

	var drops []mapscan.Span
	for _, span := range mapscan.BlockSpans(lines) {
		if span.Unterminated {
			continue
		}
		if remove(lines[span.Start : span.End+1]) {
			drops = append(drops, span)
		}
	}
	if len(drops) == 0 {
		return text, 0
	}

	kept := make([]textutil.Line, 0, len(lines))
	di := 0
	for i, ln := range lines {
		if di < len(drops) && i >= drops[di].Start && i <= drops[di].End {
			if i == drops[di].End {
				di++
			}
			continue
		}
		kept = append(kept, ln)
	}

	var sb strings.Builder
	newRaw := textutil.JoinLines(kept)
	sb.Grow(len(text) - len(world.Raw) + len(newRaw))
	sb.WriteString(text[:world.Start])
	sb.WriteString(newRaw)
	sb.WriteString(text[world.End:])
	return sb.String(), len(drops)
}

// canonicalTail is the fixed numeric face suffix for the target format:
// texture shifts, rotation, scales, and flag fields.
const canonicalTail = "0 0 0 0.5 0.5 0 0 0"

// RewriteFaces classifies every face line's texture token and replaces
// everything after the third point triple with the output material and the
// canonical tail. Lines that start like a face but fail the strict parse
// pass through unchanged and are counted as skipped.
func RewriteFaces(text string, classifier *texture.Classifier, stats *Stats) string {
	lines := textutil.SplitLines(text)
	for i, ln := range lines {
		if !mapscan.LooksLikeFace(ln.Text) {
			continue
		}
		face, ok := mapscan.ParseFace(ln.Text)
		if !ok {
			stats.FacesSkipped++
			log.Debug().
				Str("line", textutil.Truncate(strings.TrimSpace(ln.Text), 60)).
				Msg("Skipping malformed face line")
			continue
		}

		res := classifier.Classify(face.Token)
		switch res.Kind {
		case texture.KindPreserved:
			stats.CaulkFacesPreserved++
		case texture.KindTool:
			stats.ToolFacesRemapped++
		}
		stats.FacesConverted++

		lines[i].Text = ln.Text[:face.End] + " " + res.Material + " " + canonicalTail
	}
	return textutil.JoinLines(lines)
}
