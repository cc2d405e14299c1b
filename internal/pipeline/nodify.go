package pipeline

import (
	"strconv"

	"github.com/alnah/go-qaguide/internal/markup"
)

// NodeIDPrefix prefixes the ordinal in each node's id attribute.
const NodeIDPrefix = "node-"

// Nodify serializes parser events into balanced fragment lines and returns
// them with the number of nodes written. Text is escaped with placeholders.
func Nodify(events []markup.Event) (fragments []string, nodes int) {
	n := nodifier{}
	for _, e := range events {
		n.event(e)
	}
	return n.out, n.nodes
}

type nodifier struct {
	out    []string
	nodes  int
	itemOn bool
}

func (n *nodifier) emit(s string) {
	n.out = append(n.out, s)
}

func (n *nodifier) event(e markup.Event) {
	switch e.Type {
	case markup.EventNodeOpened:
		n.nodes++
		class := "node"
		if e.Node != markup.NodeQuestion {
			class += " " + string(e.Node)
		}
		n.emit(`<div class="` + class + `" id="` + NodeIDPrefix + strconv.Itoa(e.ID) + `">`)
		n.emit(`<h4 class="` + string(e.Node) + `">` + Escape(e.Text))

	case markup.EventQuestionText, markup.EventText:
		n.emit(Escape(e.Text))

	case markup.EventQuestionClosed:
		n.emit("</h4>")

	case markup.EventAnswerOpened:
		n.emit(`<div class="` + string(e.Answer) + `">`)

	case markup.EventParagraphOpened:
		n.emit("<p>")

	case markup.EventParagraphClosed:
		n.emit("</p>")

	case markup.EventListOpened:
		n.emit("<" + listTag(e.Ordered) + ">")

	case markup.EventListItem:
		n.closeItem()
		n.emit("<li>" + Escape(e.Text))
		n.itemOn = true

	case markup.EventListClosed:
		n.closeItem()
		n.emit("</" + listTag(e.Ordered) + ">")

	case markup.EventAnswerClosed, markup.EventNodeClosed:
		n.emit("</div>")
	}
}

func (n *nodifier) closeItem() {
	if n.itemOn {
		n.emit("</li>")
		n.itemOn = false
	}
}

func listTag(ordered bool) string {
	if ordered {
		return "ol"
	}
	return "ul"
}
