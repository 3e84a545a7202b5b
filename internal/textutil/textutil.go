package textutil

import "strings"

// Line is one line of a source file together with the end-of-line sequence
// that terminated it in the original bytes.
type Line struct {
	Text string // content without the terminator
	EOL  string // "\n", "\r\n", "\r", or "" on a final unterminated line
}

// SplitLines splits text into lines, keeping each line's own terminator so
// documents with mixed line-ending conventions reassemble byte for byte.
func SplitLines(text string) []Line {
	var lines []Line
	start := 0
	for i := 0; i < len(text); i++ {
		var eol string
		switch text[i] {
		case '\n':
			eol = "\n"
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				eol = "\r\n"
			} else {
				eol = "\r"
			}
		default:
			continue
		}
		lines = append(lines, Line{Text: text[start:i], EOL: eol})
		start = i + len(eol)
		i += len(eol) - 1
	}
	if start < len(text) {
		lines = append(lines, Line{Text: text[start:]})
	}
	return lines
}

// JoinLines reassembles lines produced by SplitLines.
func JoinLines(lines []Line) string {
	var sb strings.Builder
	n := 0
	for _, ln := range lines {
		n += len(ln.Text) + len(ln.EOL)
	}
	sb.Grow(n)
	for _, ln := range lines {
		sb.WriteString(ln.Text)
		sb.WriteString(ln.EOL)
	}
	return sb.String()
}

// LeadingEOL returns the end-of-line sequence at the start of s, if any.
func LeadingEOL(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return "\r\n"
	case strings.HasPrefix(s, "\n"):
		return "\n"
	case strings.HasPrefix(s, "\r"):
		return "\r"
	}
	return ""
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
