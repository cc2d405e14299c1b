package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidSelector is returned for selectors that are neither a tag name
// nor an #id.
var ErrInvalidSelector = errors.New("invalid selector")

// Parse reads a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses markup as children of context.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

// Selector picks one element: by tag name ("main") or by id ("#vault").
type Selector struct {
	Tag string
	ID  string
}

// ParseSelector parses "tag" or "#id".
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, fmt.Errorf("%w: empty", ErrInvalidSelector)
	}
	if id, ok := strings.CutPrefix(s, "#"); ok {
		if id == "" || strings.ContainsAny(id, " \t#.") {
			return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
		}
		return Selector{ID: id}, nil
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
		}
	}
	return Selector{Tag: strings.ToLower(s)}, nil
}

// MustSelector is ParseSelector for constant selectors.
func MustSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func (s Selector) String() string {
	if s.ID != "" {
		return "#" + s.ID
	}
	return s.Tag
}

// Match reports whether n is an element selected by s.
func (s Selector) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.ID != "" {
		return Attr(n, "id") == s.ID
	}
	return n.Data == s.Tag
}

// Find returns the first node, in document order, for which match is true.
func Find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node for which match is true, in document order.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// FindScript returns the first <script> element whose text contains marker.
func FindScript(root *html.Node, marker string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Script &&
			strings.Contains(TextContent(n), marker)
	})
}

// Attr returns the value of attribute key, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n carries class in its class attribute.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates all descendant text.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// IsBlank reports whether s holds only HTML whitespace.
func IsBlank(s string) bool {
	return strings.Trim(s, htmlSpace) == ""
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	RemoveChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// TextVisitor is called for each text node reached by WalkText. It may
// replace the node; it returns the node after which walking resumes.
type TextVisitor func(text *html.Node) (last *html.Node)

// WalkText calls visit for every text node under root, skipping subtrees for
// which skip returns true. Nodes inserted by visit after the visited node are
// not revisited.
func WalkText(root *html.Node, skip func(*html.Node) bool, visit TextVisitor) {
	for c := root.FirstChild; c != nil; {
		switch {
		case c.Type == html.TextNode:
			c = visit(c)
		case c.Type == html.ElementNode && skip != nil && skip(c):
		default:
			WalkText(c, skip, visit)
		}
		c = c.NextSibling
	}
}
