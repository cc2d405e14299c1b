package markup

import (
	"fmt"
	"strings"
)

// LineKind classifies a single source line.
type LineKind int

// Line kinds, in classification precedence order.
const (
	KindBlank LineKind = iota
	KindOpening
	KindAnswer
	KindComment
	KindOrderedItem
	KindUnorderedItem
	KindContent
)

// String returns a short name for the line kind.
func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindOpening:
		return "opening"
	case KindAnswer:
		return "answer"
	case KindComment:
		return "comment"
	case KindOrderedItem:
		return "ordered-item"
	case KindUnorderedItem:
		return "unordered-item"
	case KindContent:
		return "content"
	default:
		return fmt.Sprintf("LineKind(%d)", int(k))
	}
}

// NodeKind is the variant of a node, selected by its opening tag.
type NodeKind string

// Node kinds. The value doubles as the CSS class of the question heading.
const (
	NodeQuestion NodeKind = "question"
	NodePaired   NodeKind = "paired"
	NodeJinx     NodeKind = "jinx"
	NodeHateJinx NodeKind = "hate-jinx"
)

// AnswerKind is the variant of an answer body, selected by its tag.
type AnswerKind string

// Answer kinds. The value doubles as the CSS class of the answer container.
const (
	AnswerPlain       AnswerKind = "answer"
	AnswerDescription AnswerKind = "description"
)

// Comment markers. A line starting with any of them contributes nothing.
var commentMarkers = []string{"=", "--", ":"}

// List item markers, matched after leading whitespace.
const (
	orderedMarker   = "#"
	unorderedMarker = "*"
)

// Grammar names the opening and answer tags a source file may use.
// Tags are single characters; a tag line is the tag followed by a space,
// or the tag alone on the line.
type Grammar struct {
	Name     string
	Openings map[byte]NodeKind
	Answers  map[byte]AnswerKind
}

// Classic is the original two-tag grammar: Q opens a node, A answers it.
var Classic = Grammar{
	Name:     "classic",
	Openings: map[byte]NodeKind{'Q': NodeQuestion},
	Answers:  map[byte]AnswerKind{'A': AnswerPlain},
}

// Extended adds paired questions, jinxes and descriptions to Classic.
var Extended = Grammar{
	Name: "extended",
	Openings: map[byte]NodeKind{
		'Q': NodeQuestion,
		'P': NodePaired,
		'J': NodeJinx,
		'H': NodeHateJinx,
	},
	Answers: map[byte]AnswerKind{
		'A': AnswerPlain,
		'D': AnswerDescription,
	},
}

// GrammarByName returns the grammar registered under name.
func GrammarByName(name string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Classic.Name:
		return Classic, nil
	case Extended.Name:
		return Extended, nil
	default:
		return Grammar{}, fmt.Errorf("%w: %q (must be classic or extended)", ErrUnknownGrammar, name)
	}
}

// Line is a classified source line.
type Line struct {
	Number int      // 1-based
	Kind   LineKind // classification
	Tag    byte     // tag character for opening and answer lines
	Text   string   // content after the prefix, without the line terminator
}

// Classify determines the kind of a raw source line and strips its prefix.
func (g Grammar) Classify(raw string) Line {
	raw = strings.TrimRight(raw, "\r\n")

	if strings.TrimSpace(raw) == "" {
		return Line{Kind: KindBlank}
	}

	if tag, rest, ok := splitTag(raw); ok {
		if _, isOpening := g.Openings[tag]; isOpening {
			return Line{Kind: KindOpening, Tag: tag, Text: rest}
		}
		if _, isAnswer := g.Answers[tag]; isAnswer {
			return Line{Kind: KindAnswer, Tag: tag, Text: rest}
		}
	}

	for _, marker := range commentMarkers {
		if strings.HasPrefix(raw, marker) {
			return Line{Kind: KindComment, Text: raw}
		}
	}

	trimmed := strings.TrimLeft(raw, " \t")
	if rest, ok := strings.CutPrefix(trimmed, orderedMarker); ok {
		return Line{Kind: KindOrderedItem, Text: strings.TrimSpace(rest)}
	}
	if rest, ok := strings.CutPrefix(trimmed, unorderedMarker); ok {
		return Line{Kind: KindUnorderedItem, Text: strings.TrimSpace(rest)}
	}

	return Line{Kind: KindContent, Text: raw}
}

// splitTag splits "X rest" or a lone "X" into its tag and remainder.
func splitTag(raw string) (byte, string, bool) {
	if len(raw) == 1 {
		return raw[0], "", true
	}
	if len(raw) >= 2 && raw[1] == ' ' {
		return raw[0], strings.TrimSpace(raw[2:]), true
	}
	return 0, "", false
}

// Lines splits source text into lines, normalizing CRLF and CR endings.
// A trailing newline does not produce an extra empty line.
func Lines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}
