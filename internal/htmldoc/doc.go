// Package htmldoc wraps golang.org/x/net/html with the tree helpers the guide
// pipeline needs: parsing, container selectors, text walks, and a
// deterministic pretty printer.
//
// Render is the only place the tree becomes text again. Its output is stable:
// rendering, parsing and rendering again yields the same bytes for documents
// without <pre> content.
package htmldoc
