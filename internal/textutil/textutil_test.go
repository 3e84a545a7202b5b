package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "unix endings",
			input: "a\nb\n",
			want:  []Line{{"a", "\n"}, {"b", "\n"}},
		},
		{
			name:  "windows endings",
			input: "a\r\nb\r\n",
			want:  []Line{{"a", "\r\n"}, {"b", "\r\n"}},
		},
		{
			name:  "classic mac endings",
			input: "a\rb\r",
			want:  []Line{{"a", "\r"}, {"b", "\r"}},
		},
		{
			name:  "mixed endings",
			input: "a\nb\r\nc\rd",
			want:  []Line{{"a", "\n"}, {"b", "\r\n"}, {"c", "\r"}, {"d", ""}},
		},
		{
			name:  "no trailing newline",
			input: "only",
			want:  []Line{{"only", ""}},
		},
		{
			name:  "blank lines",
			input: "\n\n",
			want:  []Line{{"", "\n"}, {"", "\n"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestJoinLinesRoundTrip(t *testing.T) {
	inputs := []string{
		"a\nb\r\nc\rd",
		"{\r\n\"classname\" \"worldspawn\"\r\n}\r\n",
		"no newline at all",
		"",
	}
	for _, input := range inputs {
		assert.Equal(t, input, JoinLines(SplitLines(input)))
	}
}

func TestLeadingEOL(t *testing.T) {
	assert.Equal(t, "\r\n", LeadingEOL("\r\nrest"))
	assert.Equal(t, "\n", LeadingEOL("\nrest"))
	assert.Equal(t, "\r", LeadingEOL("\rrest"))
	assert.Equal(t, "", LeadingEOL("rest"))
	assert.Equal(t, "", LeadingEOL(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "lon...", Truncate("longer", 3))
}
