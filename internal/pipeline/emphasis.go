package pipeline

import (
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-qaguide/internal/htmldoc"
)

// emphasisPattern matches a single word between underscores. Word characters
// are Unicode letters, digits and "_".
var emphasisPattern = regexp.MustCompile(`_([\p{L}\p{N}_]+)_`)

// Emphasise replaces every _word_ in s with <em>word</em>.
func Emphasise(s string) string {
	return emphasisPattern.ReplaceAllString(s, "<em>$1</em>")
}

// EmphasiseTree applies Emphasise to the text nodes of doc, building <em>
// elements instead of markup text. Raw-text elements, the elements skipped by
// Highlight and attribute values are untouched. Returns the number of words
// emphasised.
func EmphasiseTree(doc *html.Node) int {
	skip := func(n *html.Node) bool {
		return htmldoc.IsRawText(n) || highlightSkip[n.DataAtom]
	}
	total := 0
	htmldoc.WalkText(doc, skip, func(text *html.Node) *html.Node {
		last, n := replaceMatches(text, emphasisPattern, func(data string, loc []int) *html.Node {
			return element(atom.Em, data[loc[2]:loc[3]])
		})
		total += n
		return last
	})
	return total
}
