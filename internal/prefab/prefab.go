// Package prefab resolves misc_prefab references and inlines their world
// geometry into the host document.
package prefab

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/geometry"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/mapscan"
	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/textutil"
)

// Marker is the classname of a prefab placement entity.
const Marker = "misc_prefab"

// MapExt is the map source extension tried when a model path has none.
const MapExt = ".map"

// DefaultMaxDepth bounds prefab-of-prefab recursion.
const DefaultMaxDepth = 5

// Stats counts what one expansion pass did. Counters are diagnostics, a
// missing file never aborts the conversion.
type Stats struct {
	Found        int // placement entities seen, nested ones included
	Expanded     int // references whose file was read and inlined
	BrushesAdded int // brush blocks spliced into the world entity
	MissingFiles int // references that resolved to no readable file
}

// Expander inlines prefab geometry for one file conversion. Its visited set
// and counters are scoped to that conversion and must not be reused.
type Expander struct {
	Root     string // prefab search root, may be empty
	InputDir string // directory of the document being converted
	MaxDepth int    // recursion ceiling, DefaultMaxDepth when zero

	stats   Stats
	visited map[string]struct{}
}

// NewExpander creates an Expander rooted at root for a document in inputDir.
func NewExpander(root, inputDir string) *Expander {
	return &Expander{
		Root:     root,
		InputDir: inputDir,
		visited:  make(map[string]struct{}),
	}
}

func (e *Expander) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return DefaultMaxDepth
}

// Expand rewrites a whole document: expanded prefab brushes are spliced into
// the world entity just before its closing brace, placement entities are
// consumed whether or not their file resolved, and every other entity is
// carried through in order. A document without placement entities comes back
// untouched.
func (e *Expander) Expand(text string) (string, Stats) {
	ents := mapscan.Entities(text)
	if len(ents) == 0 {
		return text, e.stats
	}

	markers := make([]bool, len(ents))
	var spliced []textutil.Line
	for i, ent := range ents[1:] {
		kv := mapscan.KeyValues(ent.Raw)
		if kv["classname"] != Marker {
			continue
		}
		markers[i+1] = true
		spliced = append(spliced, e.expandReference(kv, e.InputDir, 1)...)
	}

	if e.stats.Found == 0 {
		return text, e.stats
	}

	var sb strings.Builder
	sb.Grow(len(text))
	sb.WriteString(spliceWorld(ents[0].Raw, spliced))
	sb.WriteString(entityEOL(text, ents[0]))
	for i, ent := range ents[1:] {
		if markers[i+1] {
			continue
		}
		sb.WriteString(ent.Raw)
		sb.WriteString(entityEOL(text, ent))
	}
	return sb.String(), e.stats
}

// expandReference inlines one placement at the given recursion depth and
// returns its brush lines transformed into the caller's coordinate space.
func (e *Expander) expandReference(kv map[string]string, baseDir string, depth int) []textutil.Line {
	e.stats.Found++

	model := strings.TrimSpace(kv["model"])
	if model == "" {
		e.stats.MissingFiles++
		log.Warn().Msg("Prefab entity has no model path")
		return nil
	}
	path, ok := e.resolve(model, baseDir)
	if !ok {
		e.stats.MissingFiles++
		log.Warn().Str("model", model).Msg("Prefab file not found")
		return nil
	}
	if depth > e.maxDepth() {
		log.Warn().Str("model", model).Int("depth", depth).Msg("Prefab nesting too deep, reference dropped")
		return nil
	}

	origin, yaw := placement(kv)
	key := visitKey(path, yaw, origin, depth)
	if _, seen := e.visited[key]; seen {
		log.Debug().Str("model", model).Msg("Duplicate prefab reference skipped")
		return nil
	}
	e.visited[key] = struct{}{}

	local, ok := e.collectFile(path, depth)
	if !ok {
		return nil
	}
	e.stats.Expanded++

	out := make([]textutil.Line, 0, len(local))
	for _, ln := range local {
		eol := ln.EOL
		if eol == "" {
			eol = "\n"
		}
		out = append(out, textutil.Line{
			Text: geometry.TransformFaceLine(ln.Text, yaw, origin),
			EOL:  eol,
		})
	}
	return out
}

// collectFile reads a prefab source and returns its world brush blocks plus
// any nested prefab geometry, all in the file's own coordinate space. The
// second return is false when the file could not be read.
func (e *Expander) collectFile(path string, depth int) ([]textutil.Line, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.stats.MissingFiles++
		log.Warn().Err(err).Str("path", path).Msg("Failed to read prefab file")
		return nil, false
	}

	text := mapscan.StripMetadataLines(string(data))
	ents := mapscan.Entities(text)
	if len(ents) == 0 {
		return nil, true
	}

	var out []textutil.Line
	worldLines := textutil.SplitLines(ents[0].Raw)
	for _, span := range mapscan.BlockSpans(worldLines) {
		// A block left open at EOF cannot be spliced without swallowing the
		// host entity's closing brace.
		if span.Unterminated {
			continue
		}
		out = append(out, worldLines[span.Start:span.End+1]...)
		e.stats.BrushesAdded++
	}

	dir := filepath.Dir(path)
	for _, ent := range ents[1:] {
		kv := mapscan.KeyValues(ent.Raw)
		if kv["classname"] != Marker {
			continue
		}
		out = append(out, e.expandReference(kv, dir, depth+1)...)
	}
	return out, true
}

// resolve tries the configured locations for a model path and returns the
// first existing file, made absolute so the visited set is spelling-proof.
// Relative paths are tried against the prefab root first, then against
// baseDir, each with ".map" appended when the path has no such extension.
func (e *Expander) resolve(model, baseDir string) (string, bool) {
	model = strings.ReplaceAll(model, `\`, "/")

	var candidates []string
	if filepath.IsAbs(model) {
		candidates = append(candidates, model)
		if !hasMapExt(model) {
			candidates = append(candidates, model+MapExt)
		}
	} else {
		roots := make([]string, 0, 2)
		if e.Root != "" {
			roots = append(roots, e.Root)
		}
		roots = append(roots, baseDir)
		for _, root := range roots {
			candidates = append(candidates, filepath.Join(root, model))
		}
		if !hasMapExt(model) {
			for _, root := range roots {
				candidates = append(candidates, filepath.Join(root, model)+MapExt)
			}
		}
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			abs = c
		}
		return abs, true
	}
	return "", false
}

func hasMapExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), MapExt)
}

// placement reads a placement entity's origin and yaw. Yaw comes from the
// second component of an "angles" triple, else a scalar "angle" field, else
// zero. Malformed values degrade to zero rather than failing.
func placement(kv map[string]string) (geometry.Vec3, float64) {
	origin, _ := geometry.ParseVec3(kv["origin"])
	if angles, ok := geometry.ParseVec3(kv["angles"]); ok {
		return origin, angles.Y
	}
	if yaw, err := strconv.ParseFloat(strings.TrimSpace(kv["angle"]), 64); err == nil {
		return origin, yaw
	}
	return origin, 0
}

// visitKey identifies one reference as file plus rounded placement plus
// depth. Keying on depth keeps legitimate reuse at other depths alive while
// the ceiling still bounds true cycles.
func visitKey(path string, yaw float64, origin geometry.Vec3, depth int) string {
	return fmt.Sprintf("%s|%.3f|%.3f,%.3f,%.3f|%d", path, yaw, origin.X, origin.Y, origin.Z, depth)
}

// spliceWorld inserts brush lines immediately before the world entity's
// closing brace. An unterminated world block gains the lines at its end.
func spliceWorld(raw string, blocks []textutil.Line) string {
	if len(blocks) == 0 {
		return raw
	}

	lines := textutil.SplitLines(raw)
	closing := -1
	depth := 0
	for i, ln := range lines {
		switch strings.TrimSpace(ln.Text) {
		case "{":
			depth++
		case "}":
			if depth > 0 {
				depth--
				if depth == 0 {
					closing = i
				}
			}
		}
	}

	out := make([]textutil.Line, 0, len(lines)+len(blocks))
	if closing < 0 {
		out = append(out, lines...)
		if n := len(out); n > 0 && out[n-1].EOL == "" {
			out[n-1].EOL = "\n"
		}
		out = append(out, blocks...)
	} else {
		out = append(out, lines[:closing]...)
		out = append(out, blocks...)
		out = append(out, lines[closing:]...)
	}
	return textutil.JoinLines(out)
}

// entityEOL returns the terminator that followed the entity in the source,
// defaulting to "\n" so a rebuilt document stays line-separated.
func entityEOL(text string, ent mapscan.Entity) string {
	if ent.Unterminated {
		return ""
	}
	if eol := textutil.LeadingEOL(text[ent.End:]); eol != "" {
		return eol
	}
	return "\n"
}
