// Package mapscan segments brace-format map documents by brace counting
// only, never grammar parsing, so damaged files degrade to partial results
// instead of errors.
package mapscan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/textutil"
)

// Entity is one top-level brace-delimited block of a map document.
type Entity struct {
	Start        int    // byte offset of the opening brace
	End          int    // byte offset just past the closing brace
	Raw          string // document slice [Start:End]
	Unterminated bool   // EOF reached while the block was still open
}

// Entities scans text character by character and returns every block whose
// brace depth transitions 0 -> 1 -> ... -> 0. Bytes outside the blocks (the
// header, anything between entities) belong to no entity. A block still open
// at EOF is returned with Unterminated set rather than dropped.
func Entities(text string) []Entity {
	var ents []Entity
	depth := 0
	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			// A stray close at depth zero is ignored, depth never goes negative.
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				ents = append(ents, Entity{Start: start, End: i + 1, Raw: text[start : i+1]})
				start = -1
			}
		}
	}
	if depth > 0 && start >= 0 {
		ents = append(ents, Entity{Start: start, End: len(text), Raw: text[start:], Unterminated: true})
	}
	return ents
}

// kvPattern matches one quoted "key" "value" attribute line.
var kvPattern = regexp.MustCompile(`^\s*"([^"]+)"\s+"(.*)"\s*$`)

// KeyValues extracts the attribute pairs written directly inside an entity's
// outer braces. Lines inside nested blocks are skipped, so brush content can
// never shadow an entity attribute. Later duplicates win.
func KeyValues(raw string) map[string]string {
	kv := make(map[string]string)
	depth := 0
	for _, ln := range textutil.SplitLines(raw) {
		switch strings.TrimSpace(ln.Text) {
		case "{":
			depth++
			continue
		case "}":
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 1 {
			continue
		}
		if m := kvPattern.FindStringSubmatch(ln.Text); m != nil {
			kv[m[1]] = m[2]
		}
	}
	return kv
}

// Span marks a brush block inside an entity's lines. Start and End are
// inclusive line indexes covering the opening and closing brace lines.
type Span struct {
	Start        int
	End          int
	Unterminated bool
}

// BlockSpans locates the blocks nested one level inside an entity's outer
// braces. Only lines that are exactly "{" or "}" after trimming move the
// depth, so braces embedded in longer lines never open or close a block. A
// block left open at the last line is returned with Unterminated set.
func BlockSpans(lines []textutil.Line) []Span {
	var spans []Span
	depth := 0
	open := -1
	for i, ln := range lines {
		switch strings.TrimSpace(ln.Text) {
		case "{":
			depth++
			if depth == 2 && open < 0 {
				open = i
			}
		case "}":
			if depth == 0 {
				continue
			}
			depth--
			if depth == 1 && open >= 0 {
				spans = append(spans, Span{Start: open, End: i})
				open = -1
			}
		}
	}
	if open >= 0 {
		spans = append(spans, Span{Start: open, End: len(lines) - 1, Unterminated: true})
	}
	return spans
}

// metadataPattern matches whole-line brush directives such as
// "contents detail;" or "CONTENTS nonColliding". The separator and the
// trailing word and semicolon are all optional.
var metadataPattern = regexp.MustCompile(`(?i)^\s*contents[ _-]?\w*;?\s*$`)

// IsMetadataLine reports whether the line is a source-dialect brush
// directive that has no meaning in the target format.
func IsMetadataLine(line string) bool {
	return metadataPattern.MatchString(line)
}

// StripMetadataLines removes whole metadata lines, terminators included,
// from a document.
func StripMetadataLines(text string) string {
	lines := textutil.SplitLines(text)
	kept := make([]textutil.Line, 0, len(lines))
	for _, ln := range lines {
		if IsMetadataLine(ln.Text) {
			continue
		}
		kept = append(kept, ln)
	}
	return textutil.JoinLines(kept)
}

// Face is the structural decomposition of a face line: the three plane
// points, the byte span they occupy, and the first token after them.
type Face struct {
	Points [3][3]float64
	Start  int    // offset of the first '('
	End    int    // offset just past the third ')'
	Token  string // raw texture token, "" when the line ends at the points
}

const numberExpr = `([-+0-9.eE]+)`
const tripleExpr = `\(\s*` + numberExpr + `\s+` + numberExpr + `\s+` + numberExpr + `\s*\)`

// facePattern anchors exactly three point triples at the start of a line.
var facePattern = regexp.MustCompile(`^(\s*)` + tripleExpr + `\s*` + tripleExpr + `\s*` + tripleExpr)

// ParseFace reports whether line is structurally a face line, three
// parenthesized 3D points, and decomposes it when it is. A line that merely
// starts with '(' but fails the strict match is not a face.
func ParseFace(line string) (Face, bool) {
	m := facePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return Face{}, false
	}
	var f Face
	for g := 0; g < 9; g++ {
		lo, hi := m[4+2*g], m[5+2*g]
		v, err := strconv.ParseFloat(line[lo:hi], 64)
		if err != nil {
			return Face{}, false
		}
		f.Points[g/3][g%3] = v
	}
	f.Start = m[3] // end of the leading-whitespace group
	f.End = m[1]
	if rest := strings.Fields(line[f.End:]); len(rest) > 0 {
		f.Token = rest[0]
	}
	return f, true
}

// LooksLikeFace reports whether the line's first non-blank character is '(',
// the signature of a face line whether or not it parses strictly.
func LooksLikeFace(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "(")
}
