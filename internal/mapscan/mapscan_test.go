package mapscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/textutil"
)

func TestEntitiesOffsets(t *testing.T) {
	ents := Entities("ab{X}cd")
	require.Len(t, ents, 1)
	assert.Equal(t, 2, ents[0].Start)
	assert.Equal(t, 5, ents[0].End)
	assert.Equal(t, "{X}", ents[0].Raw)
	assert.False(t, ents[0].Unterminated)
}

func TestEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "header and two entities",
			input: "iwmap 4\n// entity 0\n{\nA\n}\n{\nB\n}\n",
			want:  []string{"{\nA\n}", "{\nB\n}"},
		},
		{
			name:  "nested braces stay in one entity",
			input: "{\n{\n( x )\n}\n}",
			want:  []string{"{\n{\n( x )\n}\n}"},
		},
		{
			name:  "stray close brace ignored",
			input: "}\n{\nA\n}",
			want:  []string{"{\nA\n}"},
		},
		{
			name:  "no braces",
			input: "nothing here",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range Entities(tt.input) {
				assert.False(t, e.Unterminated)
				got = append(got, e.Raw)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntitiesUnterminated(t *testing.T) {
	ents := Entities("{\nA\n}\n{\nB\n")
	require.Len(t, ents, 2)
	assert.Equal(t, "{\nA\n}", ents[0].Raw)
	assert.Equal(t, "{\nB\n", ents[1].Raw)
	assert.True(t, ents[1].Unterminated)
	assert.Equal(t, len("{\nA\n}\n{\nB\n"), ents[1].End)
}

func TestKeyValues(t *testing.T) {
	raw := `{
"classname" "misc_prefab"
"model" "prefabs/crate.map"
"empty" ""
{
"shadowed" "inside a brush"
( 0 0 0 ) ( 1 1 1 ) ( 2 2 2 ) tex
}
"angles" "0 90 0"
}`
	kv := KeyValues(raw)
	assert.Equal(t, map[string]string{
		"classname": "misc_prefab",
		"model":     "prefabs/crate.map",
		"empty":     "",
		"angles":    "0 90 0",
	}, kv)
}

func TestBlockSpans(t *testing.T) {
	lines := textutil.SplitLines(`{
"classname" "worldspawn"
{
( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) tex
}
{
mesh
{
inner row
}
}
}`)
	spans := BlockSpans(lines)
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Start: 2, End: 4}, spans[0])
	assert.Equal(t, Span{Start: 5, End: 10}, spans[1])
}

func TestBlockSpansEmbeddedBraceDoesNotOpen(t *testing.T) {
	lines := textutil.SplitLines("{\nfoo { bar\n{\nx\n}\n}")
	spans := BlockSpans(lines)
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Start: 2, End: 4}, spans[0])
}

func TestBlockSpansUnterminated(t *testing.T) {
	lines := textutil.SplitLines("{\n{\n( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) tex")
	spans := BlockSpans(lines)
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Start: 1, End: 2, Unterminated: true}, spans[0])
}

func TestIsMetadataLine(t *testing.T) {
	metadata := []string{
		"contents detail;",
		" contents detail",
		"CONTENTS NONCOLLIDING;",
		"contents_weapclip",
		"contents-detail;",
		"contents",
		"contents;",
		"  contents detail;  ",
	}
	for _, line := range metadata {
		assert.True(t, IsMetadataLine(line), "expected metadata: %q", line)
	}

	regular := []string{
		"contents detail extra;",
		"// contents detail;",
		"( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) contents",
		"discontents detail;",
		`"classname" "worldspawn"`,
		"",
	}
	for _, line := range regular {
		assert.False(t, IsMetadataLine(line), "expected regular: %q", line)
	}
}

func TestStripMetadataLines(t *testing.T) {
	input := "{\r\ncontents detail;\r\n( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) tex\r\nCONTENTS nonColliding\r\n}\r\n"
	want := "{\r\n( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) tex\r\n}\r\n"
	assert.Equal(t, want, StripMetadataLines(input))

	clean := "{\n( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) tex\n}\n"
	assert.Equal(t, clean, StripMetadataLines(clean))
}

func TestParseFace(t *testing.T) {
	line := "( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) some/tex 64 64 0 0 0"
	face, ok := ParseFace(line)
	require.True(t, ok)
	assert.Equal(t, [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, face.Points)
	assert.Equal(t, 0, face.Start)
	assert.Equal(t, len("( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 )"), face.End)
	assert.Equal(t, "some/tex", face.Token)
}

func TestParseFaceNumberForms(t *testing.T) {
	face, ok := ParseFace("  ( -0.5 1.25 1e3 ) ( +1 2 3 ) ( 4 5 6 )")
	require.True(t, ok)
	assert.Equal(t, 2, face.Start)
	assert.Equal(t, [3][3]float64{{-0.5, 1.25, 1000}, {1, 2, 3}, {4, 5, 6}}, face.Points)
	assert.Equal(t, "", face.Token)
}

func TestParseFaceRejects(t *testing.T) {
	malformed := []string{
		"( ( 0 0 0 1 1 ) ( 1 1 1 1 1 ) )",
		"( 0 0 0 ) ( 1 0 0 )",
		"( a b c ) ( 1 2 3 ) ( 4 5 6 ) tex",
		"( 1.2.3 4 5 ) ( 1 2 3 ) ( 4 5 6 ) tex",
		"(",
		"not a face",
		"",
	}
	for _, line := range malformed {
		_, ok := ParseFace(line)
		assert.False(t, ok, "expected reject: %q", line)
	}
}

func TestLooksLikeFace(t *testing.T) {
	assert.True(t, LooksLikeFace("( 0 0 0 )"))
	assert.True(t, LooksLikeFace("   (broken"))
	assert.True(t, LooksLikeFace("\t( ( 0 0 0 1 1 ) )"))
	assert.False(t, LooksLikeFace("{"))
	assert.False(t, LooksLikeFace(`"key" "value"`))
	assert.False(t, LooksLikeFace(""))
}
