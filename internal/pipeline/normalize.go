package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-qaguide/internal/htmldoc"
)

// DefaultIndexIndent is the extra indentation given to the keyword literal.
const DefaultIndexIndent = 6

// NormalizeOptions configures Normalize.
type NormalizeOptions struct {
	Marker string // index marker, defaults to DefaultIndexMarker
	Indent int    // extra literal indentation, 0 leaves the literal as rendered
}

// Normalize renders doc and applies the line passes in order: blank-line
// collapse, adjacent highlight spacing, index literal indentation, escape
// restoration and empty paragraph removal.
func Normalize(doc *html.Node, opts NormalizeOptions) (string, error) {
	if opts.Marker == "" {
		opts.Marker = DefaultIndexMarker
	}

	out, err := htmldoc.RenderString(doc)
	if err != nil {
		return "", err
	}
	out = CollapseBlankLines(out)
	out = FixAdjacentHighlights(out)
	out = IndentIndexLiteral(out, opts.Marker, opts.Indent)
	out = RestoreEscapes(out)
	out = RemoveEmptyParagraphs(out)
	return out, nil
}

// CollapseBlankLines drops blank lines up to the first line whose trimmed
// form starts with "<script". That line and everything after pass through.
func CollapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "<script") {
			out = append(out, lines[i:]...)
			break
		}
		if trimmed != "" {
			out = append(out, line)
		}
	}
	if strings.HasSuffix(s, "\n") && len(out) > 0 && out[len(out)-1] != "" {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// FixAdjacentHighlights separates highlight spans rendered back to back.
func FixAdjacentHighlights(s string) string {
	return strings.ReplaceAll(s, "</span><span", "</span> <span")
}

// IndentIndexLiteral indents the lines after the marker line, up to and
// including the line starting with "};", by n spaces.
func IndentIndexLiteral(s, marker string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	inside := false
	for i, line := range lines {
		if inside {
			lines[i] = pad + line
			if strings.HasPrefix(line, indexTerminator) {
				inside = false
			}
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), marker) && !strings.Contains(line, indexTerminator) {
			inside = true
		}
	}
	return strings.Join(lines, "\n")
}

// RemoveEmptyParagraphs drops lines that are "<p></p>" once trimmed.
func RemoveEmptyParagraphs(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "<p></p>" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
