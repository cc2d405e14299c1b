// Package pipeline implements the stages that turn parsed Q&A events into
// the finished guide document.
//
// The stages run in a fixed order over one *html.Node tree:
//   - Nodify serializes markup events into fragment lines
//   - Merge replaces the content container with the fragments
//   - Highlight wraps vocabulary terms in category spans
//   - RebuildIndex regenerates the keyword literal in the index script
//   - EmphasiseTree turns _word_ into <em>word</em> in text nodes
//   - Normalize renders the tree once and applies the line passes
//
// Text from the source is escaped with Private Use Area placeholders while
// it travels through the tree, and restored as entities after rendering.
package pipeline
