package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodeType discriminates element and text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an element or text node owned by a Document.
//
// Child links are kept on both the wrapper and the underlying html.Node so
// serialization always reflects the live tree.
type Node struct {
	h         *html.Node
	doc       *Document
	parent    *Node
	children  []*Node
	listeners map[string][]listenerEntry
	bound     map[string]boundListener
}

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Type returns the node type.
func (n *Node) Type() NodeType {
	if n.h.Type == html.TextNode {
		return TextNode
	}
	return ElementNode
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n.Type() == ElementNode }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Type() == TextNode }

// Tag returns the element tag name, or "" for text nodes.
func (n *Node) Tag() string {
	if n.IsText() {
		return ""
	}
	return n.h.Data
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// ChildNodes returns a copy of the child list.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// HasChildNodes reports whether n has any children.
func (n *Node) HasChildNodes() bool { return len(n.children) > 0 }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// ChildAt returns the child at index i or nil.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	return n.parent.ChildAt(i + 1)
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild appends c, detaching it from its current parent first.
func (n *Node) AppendChild(c *Node) {
	n.InsertBefore(c, nil)
}

// InsertBefore inserts c before ref. A nil ref appends. A ref that is not a
// child of n also appends.
func (n *Node) InsertBefore(c, ref *Node) {
	if c == nil || c == ref {
		return
	}
	c.detach()

	idx := -1
	if ref != nil {
		idx = n.indexOf(ref)
	}
	if idx < 0 {
		n.h.AppendChild(c.h)
		n.children = append(n.children, c)
	} else {
		n.h.InsertBefore(c.h, ref.h)
		n.children = append(n.children, nil)
		copy(n.children[idx+1:], n.children[idx:])
		n.children[idx] = c
	}
	c.parent = n
}

// ReplaceChild puts next in old's position and detaches old.
func (n *Node) ReplaceChild(next, old *Node) {
	if old == nil || old.parent != n {
		return
	}
	if next == old {
		return
	}
	n.InsertBefore(next, old)
	n.RemoveChild(old)
}

// RemoveChild detaches c if it is a child of n.
func (n *Node) RemoveChild(c *Node) {
	if c == nil || c.parent != n {
		return
	}
	c.detach()
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	n.detach()
}

// Clear removes every child of n.
func (n *Node) Clear() {
	for len(n.children) > 0 {
		n.children[len(n.children)-1].detach()
	}
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	p.h.RemoveChild(n.h)
	n.parent = nil
}

// Data returns the raw text of a text node.
func (n *Node) Data() string {
	if n.IsText() {
		return n.h.Data
	}
	return ""
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.h.Data
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(x *Node) {
		if x.IsText() {
			b.WriteString(x.h.Data)
			return
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// SetTextContent sets the data of a text node, or replaces an element's
// children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.IsText() {
		n.h.Data = text
		return
	}
	n.Clear()
	if text != "" {
		n.AppendChild(n.doc.CreateTextNode(text))
	}
}

// String returns a short description for logs.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return "#text"
	}
	var b strings.Builder
	b.WriteString(n.h.Data)
	if id, ok := n.GetAttribute("id"); ok && id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	return b.String()
}
