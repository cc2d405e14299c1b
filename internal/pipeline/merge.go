package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-qaguide/internal/htmldoc"
)

// Sentinel errors for document structure.
var (
	ErrContainerNotFound = errors.New("content container not found")
	ErrIndexNotFound     = errors.New("keyword index not found")
)

// MergeStats reports what Merge did to the container.
type MergeStats struct {
	Replaced int // children removed from the container
	Inserted int // top-level nodes inserted
	Dropped  int // empty divs removed from the fragments
}

// Merge replaces the children of the element selected by sel with the parsed
// fragments. Top-level whitespace text and every div without text content
// are dropped. Returns ErrContainerNotFound if nothing matches sel.
func Merge(doc *html.Node, sel htmldoc.Selector, fragments []string) (MergeStats, error) {
	var stats MergeStats

	container := htmldoc.Find(doc, sel.Match)
	if container == nil {
		return stats, fmt.Errorf("%w: %s", ErrContainerNotFound, sel)
	}

	nodes, err := htmldoc.ParseFragment(strings.Join(fragments, "\n"), container)
	if err != nil {
		return stats, err
	}

	for c := container.FirstChild; c != nil; c = c.NextSibling {
		stats.Replaced++
	}
	htmldoc.RemoveChildren(container)

	for _, n := range nodes {
		if n.Type == html.TextNode && htmldoc.IsBlank(n.Data) {
			continue
		}
		if isEmptyDiv(n) {
			stats.Dropped++
			continue
		}
		stats.Dropped += dropEmptyDivs(n)
		container.AppendChild(n)
		stats.Inserted++
	}
	return stats, nil
}

func isEmptyDiv(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Div &&
		htmldoc.IsBlank(htmldoc.TextContent(n))
}

// dropEmptyDivs removes empty divs below n and returns how many it removed.
func dropEmptyDivs(n *html.Node) int {
	dropped := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isEmptyDiv(c) {
			n.RemoveChild(c)
			dropped++
		} else {
			dropped += dropEmptyDivs(c)
		}
		c = next
	}
	return dropped
}
