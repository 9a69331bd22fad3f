package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a tree of nodes rooted at an <html> element.
type Document struct {
	root *Node
	head *Node
	body *Node

	nextListenerID ListenerID
}

// NewDocument creates an empty document with <html>, <head> and <body>.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("html")
	d.head = d.CreateElement("head")
	d.body = d.CreateElement("body")
	d.root.AppendChild(d.head)
	d.root.AppendChild(d.body)
	return d
}

// Root returns the <html> element.
func (d *Document) Root() *Node { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *Node { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates a detached element with the given tag name.
func (d *Document) CreateElement(tag string) *Node {
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(h)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return d.wrap(&html.Node{Type: html.TextNode, Data: text})
}

// QuerySelector returns the first element in the document matching sel.
func (d *Document) QuerySelector(sel string) *Node {
	return d.root.QuerySelector(sel)
}

// GetElementByID returns the element with the given id attribute.
func (d *Document) GetElementByID(id string) *Node {
	return d.root.QuerySelector("#" + id)
}

func (d *Document) wrap(h *html.Node) *Node {
	return &Node{h: h, doc: d}
}
