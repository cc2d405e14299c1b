package markup

// EventType identifies a structural event emitted by the Parser.
type EventType int

// Structural events. Every Opened event is matched by a Closed event of the
// same element before the enclosing element closes.
const (
	EventNodeOpened EventType = iota
	EventQuestionText
	EventQuestionClosed
	EventAnswerOpened
	EventParagraphOpened
	EventText
	EventParagraphClosed
	EventListOpened
	EventListItem
	EventListClosed
	EventAnswerClosed
	EventNodeClosed
)

var eventNames = [...]string{
	EventNodeOpened:      "NodeOpened",
	EventQuestionText:    "QuestionText",
	EventQuestionClosed:  "QuestionClosed",
	EventAnswerOpened:    "AnswerOpened",
	EventParagraphOpened: "ParagraphOpened",
	EventText:            "Text",
	EventParagraphClosed: "ParagraphClosed",
	EventListOpened:      "ListOpened",
	EventListItem:        "ListItem",
	EventListClosed:      "ListClosed",
	EventAnswerClosed:    "AnswerClosed",
	EventNodeClosed:      "NodeClosed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "Unknown"
}

// Event is one step of the parsed document structure.
// Only the fields relevant to Type are set.
type Event struct {
	Type    EventType
	Line    int        // source line that produced the event
	ID      int        // node ordinal, EventNodeOpened only
	Node    NodeKind   // EventNodeOpened only
	Answer  AnswerKind // EventAnswerOpened only
	Ordered bool       // list events only
	Text    string     // raw, unescaped source text
}
