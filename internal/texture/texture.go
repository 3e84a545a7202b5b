package texture

import (
	"fmt"
	"regexp"
	"strings"
)

// Caulk is the no-draw material that survives every conversion setting.
const Caulk = "common/caulk"

// Mode selects what happens to tokens that are neither preserved nor mapped
// by the tool table.
type Mode int

const (
	// ModeCaulkAll maps every unmapped token to common/caulk.
	ModeCaulkAll Mode = iota
	// ModePlaceholders assigns sequential placeholder identifiers so the
	// original texture set stays distinguishable in an editor.
	ModePlaceholders
)

func (m Mode) String() string {
	switch m {
	case ModeCaulkAll:
		return "caulk_all"
	case ModePlaceholders:
		return "placeholders"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "caulk_all", "":
		return ModeCaulkAll, nil
	case "placeholders":
		return ModePlaceholders, nil
	}
	return ModeCaulkAll, fmt.Errorf("unknown texture mode %q (want caulk_all or placeholders)", s)
}

const texturesPrefix = "textures/"

// Normalize converts backslashes to forward slashes and strips one leading
// "textures/" prefix, so the same material spelled different ways classifies
// identically.
func Normalize(token string) string {
	t := strings.ReplaceAll(token, `\`, "/")
	if len(t) >= len(texturesPrefix) && strings.EqualFold(t[:len(texturesPrefix)], texturesPrefix) {
		t = t[len(texturesPrefix):]
	}
	return t
}

// IsCaulk reports whether a normalized token is caulk in either accepted
// spelling, bare or path-qualified.
func IsCaulk(token string) bool {
	return strings.EqualFold(token, "caulk") || strings.EqualFold(token, Caulk)
}

// toolMapping pairs a source tool-texture keyword with its target material.
type toolMapping struct {
	keyword string
	target  string
	pattern *regexp.Regexp
}

// toolMappings is the fixed translation table for tool textures, in match
// precedence order. Keywords must appear as standalone path segments, so
// clip matches "clip" and "foo/clip" but not "clipper" or "clip_metal".
var toolMappings = buildToolMappings()

func buildToolMappings() []toolMapping {
	specs := []struct{ keyword, target string }{
		{"clip", "common/clip"},
		{"clip_snow", "common/clip"},
		{"hint", "common/hint"},
		{"hintskip", "common/hint"},
		{"portal_nodraw", "common/portal_nodraw"},
		{"lightgrid_volume", "common/lightgrid"},
	}
	mappings := make([]toolMapping, len(specs))
	for i, s := range specs {
		mappings[i] = toolMapping{
			keyword: s.keyword,
			target:  s.target,
			pattern: regexp.MustCompile(`(?i)\b` + s.keyword + `\b`),
		}
	}
	return mappings
}

// ToolTarget scans a normalized token for a tool-texture keyword and returns
// the keyword and the material it maps to.
func ToolTarget(token string) (keyword, target string, ok bool) {
	for _, m := range toolMappings {
		if m.pattern.MatchString(token) {
			return m.keyword, m.target, true
		}
	}
	return "", "", false
}

// Kind tags how a token was classified.
type Kind int

const (
	// KindPreserved means caulk, which always survives as common/caulk.
	KindPreserved Kind = iota
	// KindTool means the token matched the tool translation table.
	KindTool
	// KindFallback means the active mode decided the output material.
	KindFallback
)

// Result is the classification of one face token.
type Result struct {
	Material string // output material path
	Kind     Kind
	Tool     string // matched tool keyword when Kind is KindTool
}

// Classifier applies the fixed precedence caulk > tool table > mode fallback
// to face tokens. In placeholders mode it threads first-seen numbering
// through an Allocator scoped to one conversion.
type Classifier struct {
	mode  Mode
	alloc *Allocator
}

// NewClassifier creates a Classifier for one file conversion.
func NewClassifier(mode Mode, placeholderPrefix string) *Classifier {
	return &Classifier{mode: mode, alloc: NewAllocator(placeholderPrefix)}
}

// Classify decides the output material for one raw face token. The decision
// depends only on the token and the fixed tables, except placeholder
// numbering, which is first-seen-wins within the conversion.
func (c *Classifier) Classify(rawToken string) Result {
	token := Normalize(rawToken)
	if IsCaulk(token) {
		return Result{Material: Caulk, Kind: KindPreserved}
	}
	if keyword, target, ok := ToolTarget(token); ok {
		return Result{Material: target, Kind: KindTool, Tool: keyword}
	}
	if c.mode == ModePlaceholders {
		return Result{Material: c.alloc.Identifier(token), Kind: KindFallback}
	}
	return Result{Material: Caulk, Kind: KindFallback}
}

// Legend returns the placeholder table accumulated so far.
func (c *Classifier) Legend() []LegendEntry {
	return c.alloc.Legend()
}

// PlaceholderCount reports how many distinct placeholders were allocated.
func (c *Classifier) PlaceholderCount() int {
	return c.alloc.Len()
}
