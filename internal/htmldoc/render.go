package htmldoc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// IndentUnit is the indentation added per nesting level by Render.
const IndentUnit = "  "

// htmlSpace is the HTML definition of whitespace. U+00A0 is not in it.
const htmlSpace = " \t\n\f\r"

// inlineElements render inside a line of text instead of on their own line.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"cite": true, "code": true, "data": true, "dfn": true, "em": true,
	"i": true, "img": true, "kbd": true, "label": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true, "wbr": true,
}

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// rawTextElements hold unescaped text that is written back verbatim.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// preformatted elements keep their whitespace and are rendered by x/net/html.
var preformatted = map[string]bool{
	"pre": true, "textarea": true, "listing": true,
}

// IsRawText reports whether n is an element whose text must not be touched.
func IsRawText(n *html.Node) bool {
	return n.Type == html.ElementNode && (rawTextElements[n.Data] || preformatted[n.Data])
}

// Render pretty-prints the tree rooted at n.
//
// Block elements open and close on their own lines, indented by IndentUnit per
// level. Elements whose content is inline only are written on a single line
// with whitespace collapsed, and runs of inline siblings share a line. Text is
// escaped for &, < and > only, so characters such as Private Use Area
// placeholders pass through unchanged.
func Render(w io.Writer, n *html.Node) error {
	bw := bufio.NewWriter(w)
	r := &renderer{w: bw}
	if n.Type == html.DocumentNode {
		r.block(n, 0)
	} else {
		r.node(n, 0)
	}
	if r.err != nil {
		return r.err
	}
	return bw.Flush()
}

// RenderString is Render into a string.
func RenderString(n *html.Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

type renderer struct {
	w   *bufio.Writer
	err error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = r.w.WriteString(s)
}

func (r *renderer) line(depth int, s string) {
	r.write(strings.Repeat(IndentUnit, depth))
	r.write(s)
	r.write("\n")
}

// block renders the children of n, one block per line, grouping inline runs.
func (r *renderer) block(n *html.Node, depth int) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		var b strings.Builder
		for _, c := range run {
			writeInline(&b, c)
		}
		if text := strings.Trim(b.String(), " "); text != "" {
			r.line(depth, text)
		}
		run = run[:0]
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isInline(c) {
			run = append(run, c)
			continue
		}
		flush()
		r.node(c, depth)
	}
	flush()
}

func (r *renderer) node(n *html.Node, depth int) {
	switch n.Type {
	case html.DoctypeNode:
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			r.err = fmt.Errorf("rendering doctype: %w", err)
			return
		}
		r.line(depth, b.String())

	case html.CommentNode:
		r.line(depth, "<!--"+n.Data+"-->")

	case html.TextNode:
		if text := strings.Trim(collapseSpace(escapeText(n.Data)), " "); text != "" {
			r.line(depth, text)
		}

	case html.DocumentNode:
		r.block(n, depth)

	case html.ElementNode:
		r.element(n, depth)
	}
}

func (r *renderer) element(n *html.Node, depth int) {
	switch {
	case voidElements[n.Data]:
		r.line(depth, openTag(n))

	case rawTextElements[n.Data]:
		var b strings.Builder
		b.WriteString(openTag(n))
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(c.Data)
		}
		b.WriteString("</" + n.Data + ">")
		r.line(depth, b.String())

	case preformatted[n.Data]:
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			r.err = fmt.Errorf("rendering <%s>: %w", n.Data, err)
			return
		}
		r.line(depth, b.String())

	case inlineOnly(n):
		var b strings.Builder
		writeInline(&b, n)
		r.line(depth, b.String())

	default:
		r.line(depth, openTag(n))
		r.block(n, depth+1)
		r.line(depth, "</"+n.Data+">")
	}
}

// isInline reports whether n belongs on a shared text line.
func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return inlineElements[n.Data] && inlineOnly(n)
	default:
		return false
	}
}

// inlineOnly reports whether every child of n is inline.
func inlineOnly(n *html.Node) bool {
	if rawTextElements[n.Data] || preformatted[n.Data] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isInline(c) {
			return false
		}
	}
	return true
}

// writeInline writes n on one line. The content of an element is trimmed so
// that "<p>\n  text\n</p>" becomes "<p>text</p>".
func writeInline(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(collapseSpace(escapeText(n.Data)))
		return
	}

	b.WriteString(openTag(n))
	if voidElements[n.Data] {
		return
	}
	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(&inner, c)
	}
	content := inner.String()
	if !inlineElements[n.Data] {
		content = strings.Trim(content, " ")
	}
	b.WriteString(content)
	b.WriteString("</" + n.Data + ">")
}

func openTag(n *html.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// collapseSpace replaces every run of HTML whitespace with one space.
func collapseSpace(s string) string {
	if !strings.ContainsAny(s, htmlSpace) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(htmlSpace, s[i]) >= 0 {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteByte(s[i])
	}
	return b.String()
}
