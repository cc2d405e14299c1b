package markup

import (
	"errors"
	"fmt"
)

// Sentinel errors for markup operations.
var (
	ErrMalformed      = errors.New("malformed source")
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// FormatError reports a tag-ordering violation at a source line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *FormatError) Unwrap() error { return ErrMalformed }

type family int

const (
	familyNone family = iota
	familyQuestion
	familyAnswer
)

// Validate checks that question-family and answer-family tags alternate,
// starting with a question and ending with an answer.
// Returns a *FormatError describing the first violation.
func Validate(g Grammar, lines []string) error {
	last := familyNone
	lastTag := byte(0)
	lastQuestionLine := 0

	for i, raw := range lines {
		number := i + 1
		line := g.Classify(raw)

		var current family
		switch line.Kind {
		case KindOpening:
			current = familyQuestion
		case KindAnswer:
			current = familyAnswer
		default:
			continue
		}

		if current == familyAnswer && last == familyNone {
			return &FormatError{
				Line:   number,
				Reason: fmt.Sprintf("'%c' detected before any question tag", line.Tag),
			}
		}
		if current == last {
			return &FormatError{
				Line:   number,
				Reason: fmt.Sprintf("'%c' detected after '%c'", line.Tag, lastTag),
			}
		}

		if current == familyQuestion {
			lastQuestionLine = number
		}
		last = current
		lastTag = line.Tag
	}

	switch last {
	case familyNone:
		return &FormatError{Reason: "no question tags found"}
	case familyQuestion:
		return &FormatError{Line: lastQuestionLine, Reason: "missing answer tag at end of file"}
	}
	return nil
}
