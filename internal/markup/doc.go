// Package markup implements the line-oriented Q&A source grammar.
//
// A source file is a sequence of nodes. Each node opens with a question-family
// tag line and continues with an answer-family tag line:
//
//	Q Is the Poisoner evil?
//	A Yes, the Poisoner is always evil.
//
//	* unordered item
//	# ordered item
//	-- comment, dropped
//
// Validate checks tag alternation before anything else runs. Parser turns the
// lines into structural events (NodeOpened, AnswerOpened, ListItem, ...) that
// the HTML layer in package pipeline serializes. The parser never produces
// markup itself.
package markup
