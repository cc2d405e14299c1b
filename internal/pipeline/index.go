package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/net/html"

	"github.com/alnah/go-qaguide/internal/htmldoc"
	"github.com/alnah/go-qaguide/internal/keywords"
)

// DefaultIndexMarker opens the keyword literal inside the index script.
const DefaultIndexMarker = "var keywords = {"

// indexTerminator closes the keyword literal.
const indexTerminator = "};"

// IndexShape selects how the keyword literal is keyed.
type IndexShape string

// Supported index shapes.
const (
	ShapeCategory     IndexShape = "category"     // category name -> entries
	ShapeAlphabetical IndexShape = "alphabetical" // first letter -> entries
)

// IndexOptions configures RebuildIndex.
type IndexOptions struct {
	Marker string     // defaults to DefaultIndexMarker
	Shape  IndexShape // defaults to ShapeCategory
}

func (o IndexOptions) withDefaults() IndexOptions {
	if o.Marker == "" {
		o.Marker = DefaultIndexMarker
	}
	if o.Shape == "" {
		o.Shape = ShapeCategory
	}
	return o
}

// RebuildIndex replaces the keyword literal of the first script containing
// the marker with a freshly serialized mapping, and returns the number of
// entries written. The literal spans from the first "{" of the marker through
// the next "};". Returns ErrIndexNotFound when no script holds the marker or
// the literal is unterminated.
func RebuildIndex(doc *html.Node, vocab *keywords.Vocabulary, opts IndexOptions) (int, error) {
	opts = opts.withDefaults()

	script := htmldoc.FindScript(doc, opts.Marker)
	if script == nil {
		return 0, fmt.Errorf("%w: no script contains %q", ErrIndexNotFound, opts.Marker)
	}

	code := htmldoc.TextContent(script)
	start := strings.Index(code, opts.Marker)
	open := strings.Index(code[start:], "{")
	if open < 0 {
		return 0, fmt.Errorf("%w: marker %q has no opening brace", ErrIndexNotFound, opts.Marker)
	}
	open += start
	end := strings.Index(code[open:], indexTerminator)
	if end < 0 {
		return 0, fmt.Errorf("%w: literal after %q is not terminated by %q", ErrIndexNotFound, opts.Marker, indexTerminator)
	}
	end += open + 1 // keep ";"

	literal, err := IndexLiteral(vocab, opts.Shape)
	if err != nil {
		return 0, err
	}

	htmldoc.SetText(script, code[:open]+literal+code[end:])
	return vocab.Count(), nil
}

// IndexLiteral serializes the vocabulary as a JSON object indented by two
// spaces, keyed according to shape.
func IndexLiteral(vocab *keywords.Vocabulary, shape IndexShape) (string, error) {
	index := orderedmap.New[string, []string]()

	switch shape {
	case ShapeCategory, "":
		for _, c := range vocab.Categories {
			entries := make([]string, 0, len(c.Terms))
			for _, e := range c.Entries() {
				entries = append(entries, e.Encode())
			}
			index.Set(c.Name, entries)
		}

	case ShapeAlphabetical:
		buckets := make(map[string][]string)
		for _, c := range vocab.Categories {
			for _, e := range c.Entries() {
				key := bucketKey(e.Canonical)
				buckets[key] = append(buckets[key], e.Encode())
			}
		}
		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries := buckets[k]
			sort.Strings(entries)
			index.Set(k, entries)
		}

	default:
		return "", fmt.Errorf("unknown index shape %q", shape)
	}

	raw, err := json.Marshal(index)
	if err != nil {
		return "", fmt.Errorf("encoding keyword index: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indenting keyword index: %w", err)
	}
	return buf.String(), nil
}

// bucketKey returns the upper-cased first letter of term.
func bucketKey(term string) string {
	r, _ := utf8.DecodeRuneInString(term)
	return string(unicode.ToUpper(r))
}
