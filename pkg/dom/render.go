package dom

import (
	"bytes"

	"golang.org/x/net/html"
)

// OuterHTML serializes n and its subtree.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n.h); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML serializes n's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range n.children {
		if err := html.Render(&buf, c.h); err != nil {
			return ""
		}
	}
	return buf.String()
}
