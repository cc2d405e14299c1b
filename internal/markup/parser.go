package markup

import "strings"

type mode int

const (
	modeIdle mode = iota // before the first node
	modeQuestion
	modeAnswer
)

type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

// Parser turns classified source lines into structural events.
// It is a finite-state machine advanced one line at a time by Feed;
// Close flushes the closing events of the last node.
type Parser struct {
	grammar   Grammar
	mode      mode
	list      listKind
	paragraph bool
	nodes     int
	discarded int
	line      int
	out       []Event
}

// NewParser creates a Parser for the given grammar.
func NewParser(g Grammar) *Parser {
	return &Parser{grammar: g}
}

// Nodes returns the number of nodes opened so far.
func (p *Parser) Nodes() int { return p.nodes }

// Discarded returns the number of content lines dropped because they
// appeared before the first node.
func (p *Parser) Discarded() int { return p.discarded }

// Feed consumes one raw source line and returns the events it produced.
func (p *Parser) Feed(raw string) []Event {
	p.line++
	line := p.grammar.Classify(raw)
	line.Number = p.line

	switch line.Kind {
	case KindBlank:
		p.closeList()
		if p.mode == modeAnswer {
			p.closeParagraph()
		}

	case KindOpening:
		p.closeNode()
		p.nodes++
		p.mode = modeQuestion
		p.emit(Event{
			Type: EventNodeOpened,
			ID:   p.nodes,
			Node: p.grammar.Openings[line.Tag],
			Text: line.Text,
		})

	case KindAnswer:
		p.answer(line)

	case KindComment:
		// dropped

	case KindOrderedItem, KindUnorderedItem:
		if p.mode != modeAnswer {
			p.content(strings.TrimSpace(raw))
			break
		}
		want := listUnordered
		if line.Kind == KindOrderedItem {
			want = listOrdered
		}
		p.item(want, line.Text)

	case KindContent:
		p.content(line.Text)
	}

	return p.flush()
}

// Close ends the input, closing whatever node is still open.
func (p *Parser) Close() []Event {
	p.closeNode()
	return p.flush()
}

func (p *Parser) answer(line Line) {
	switch p.mode {
	case modeQuestion:
		p.emit(Event{Type: EventQuestionClosed})
		p.emit(Event{Type: EventAnswerOpened, Answer: p.grammar.Answers[line.Tag]})
		p.mode = modeAnswer
	case modeAnswer:
		// A repeated answer tag starts a fresh paragraph of the same body.
		p.closeList()
		p.closeParagraph()
	default:
		p.discarded++
		return
	}
	if line.Text != "" {
		p.content(line.Text)
	}
}

func (p *Parser) content(text string) {
	switch p.mode {
	case modeIdle:
		p.discarded++
	case modeQuestion:
		p.emit(Event{Type: EventQuestionText, Text: text})
	case modeAnswer:
		if p.list == listNone && !p.paragraph {
			p.emit(Event{Type: EventParagraphOpened})
			p.paragraph = true
		}
		p.emit(Event{Type: EventText, Text: text})
	}
}

func (p *Parser) item(want listKind, text string) {
	if p.list != want {
		p.closeList()
		p.closeParagraph()
		p.emit(Event{Type: EventListOpened, Ordered: want == listOrdered})
		p.list = want
	}
	p.emit(Event{Type: EventListItem, Ordered: want == listOrdered, Text: text})
}

func (p *Parser) closeList() {
	if p.list == listNone {
		return
	}
	p.emit(Event{Type: EventListClosed, Ordered: p.list == listOrdered})
	p.list = listNone
}

func (p *Parser) closeParagraph() {
	if !p.paragraph {
		return
	}
	p.emit(Event{Type: EventParagraphClosed})
	p.paragraph = false
}

func (p *Parser) closeNode() {
	if p.nodes == 0 || p.mode == modeIdle {
		return
	}
	p.closeList()
	p.closeParagraph()
	switch p.mode {
	case modeQuestion:
		p.emit(Event{Type: EventQuestionClosed})
	case modeAnswer:
		p.emit(Event{Type: EventAnswerClosed})
	}
	p.emit(Event{Type: EventNodeClosed})
	p.mode = modeIdle
}

func (p *Parser) emit(e Event) {
	e.Line = p.line
	p.out = append(p.out, e)
}

func (p *Parser) flush() []Event {
	out := p.out
	p.out = nil
	return out
}

// Result summarizes a complete parse.
type Result struct {
	Events    []Event
	Nodes     int
	Discarded int
}

// Parse runs a Parser over all lines.
func Parse(g Grammar, lines []string) Result {
	p := NewParser(g)
	var events []Event
	for _, line := range lines {
		events = append(events, p.Feed(line)...)
	}
	events = append(events, p.Close()...)
	return Result{Events: events, Nodes: p.Nodes(), Discarded: p.Discarded()}
}
