package pipeline

import (
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-qaguide/internal/htmldoc"
	"github.com/alnah/go-qaguide/internal/keywords"
)

// highlightSkip lists elements whose text is never highlighted.
var highlightSkip = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Title:    true,
	atom.Textarea: true,
}

// Highlight wraps whole-word, case-sensitive occurrences of every vocabulary
// term in <span class="CLASS">. Categories are applied in highlight order and
// terms in entry order, canonical first. Text already inside a highlight span
// is left alone, so running Highlight twice adds nothing.
//
// Returns the number of wraps per category name.
func Highlight(doc *html.Node, vocab *keywords.Vocabulary) map[string]int {
	classes := vocab.Classes()
	skip := func(n *html.Node) bool {
		if highlightSkip[n.DataAtom] {
			return true
		}
		if n.DataAtom != atom.Span {
			return false
		}
		for class := range classes {
			if htmldoc.HasClass(n, class) {
				return true
			}
		}
		return false
	}

	wraps := make(map[string]int, len(vocab.Categories))
	for _, category := range vocab.HighlightCategories() {
		class := category.CSSClass()
		for _, entry := range category.Entries() {
			for _, term := range entry.Terms() {
				pattern := termPattern(term)
				htmldoc.WalkText(doc, skip, func(text *html.Node) *html.Node {
					last, n := wrapMatches(text, pattern, func(match string) *html.Node {
						return element(atom.Span, match, html.Attribute{Key: "class", Val: class})
					})
					wraps[category.Name] += n
					return last
				})
			}
		}
	}
	return wraps
}

// termPattern matches term as a whole word.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
}

// wrapMatches splits text around every match of pattern and replaces each
// match with the node built by wrap. Returns the last node now occupying the
// place of text and the number of matches.
func wrapMatches(text *html.Node, pattern *regexp.Regexp, wrap func(match string) *html.Node) (*html.Node, int) {
	return replaceMatches(text, pattern, func(data string, loc []int) *html.Node {
		return wrap(data[loc[0]:loc[1]])
	})
}

// replaceMatches is wrapMatches with access to submatch indexes.
func replaceMatches(text *html.Node, pattern *regexp.Regexp, build func(data string, loc []int) *html.Node) (*html.Node, int) {
	data := text.Data
	locs := pattern.FindAllStringSubmatchIndex(data, -1)
	if len(locs) == 0 {
		return text, 0
	}

	parent := text.Parent
	var last *html.Node
	insert := func(n *html.Node) {
		parent.InsertBefore(n, text)
		last = n
	}

	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			insert(&html.Node{Type: html.TextNode, Data: data[pos:loc[0]]})
		}
		insert(build(data, loc))
		pos = loc[1]
	}
	if pos < len(data) {
		insert(&html.Node{Type: html.TextNode, Data: data[pos:]})
	}
	parent.RemoveChild(text)
	return last, len(locs)
}

// element builds <tag attrs...>text</tag>.
func element(tag atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String(), Attr: attrs}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
