// Package qaguide rebuilds a static HTML reference guide from a plain-text
// question and answer source.
//
// # Quick Start
//
// Create a service and rebuild a document:
//
//	svc := qaguide.New()
//
//	result, err := svc.Build(ctx, qaguide.Input{
//	    Source:   "Q Can the Poisoner poison the Demon?\nA Yes.\n",
//	    Document: string(page),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("guide.html", []byte(result.HTML), 0644)
//
// The document must contain the content container (<main> by default) and a
// <script> holding the keyword index literal ("var keywords = {...};").
//
// # Source Format
//
// Each line is classified by its prefix:
//
//	Q text        opens a node with a question (extended: P, J, H too)
//	A text        starts the answer (extended: D for a description)
//	# item        ordered list item inside an answer
//	* item        unordered list item inside an answer
//	= -- :        comment lines
//	(blank)       ends the current paragraph
//
// Opening and answer tags must alternate. Check reports the first violation
// as a *FormatError carrying the line number.
//
// # Pipeline
//
// Build runs these stages in order:
//
//  1. Validate tag alternation
//  2. Parse the source into node fragments
//  3. Replace the container content with the fragments
//  4. Wrap vocabulary terms in category spans
//  5. Rewrite the keyword index literal
//  6. Convert _word_ runs to <em>
//  7. Pretty-print and normalize the document
//
// # Configuration
//
// Use functional options to customize the service:
//
//	vocab, err := qaguide.LoadVocabulary("keywords.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc := qaguide.New(
//	    qaguide.WithGrammar(qaguide.Extended),
//	    qaguide.WithVocabulary(vocab),
//	    qaguide.WithIndexShape(qaguide.ShapeAlphabetical),
//	    qaguide.WithStrict(false),
//	)
//
// Strict services (the default) reject a document missing the container or
// the index before changing anything. Lenient services log a warning, skip
// the stage and list it in Result.Skipped.
//
// # Error Handling
//
// The package defines sentinel errors for common failures:
//
//	var fe *qaguide.FormatError
//	switch {
//	case errors.As(err, &fe):
//	    // Malformed source; fe.Line is 1-based
//	case errors.Is(err, qaguide.ErrContainerNotFound):
//	    // Document has no content container
//	case errors.Is(err, qaguide.ErrIndexNotFound):
//	    // Document has no keyword index script
//	}
package qaguide
