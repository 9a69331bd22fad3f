package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Attr is a single attribute.
type Attr struct {
	Key string
	Val string
}

// SetAttribute sets or replaces an attribute.
func (n *Node) SetAttribute(key, val string) {
	if n.IsText() {
		return
	}
	for i := range n.h.Attr {
		if n.h.Attr[i].Key == key {
			n.h.Attr[i].Val = val
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: key, Val: val})
}

// GetAttribute returns an attribute value and whether it is present.
func (n *Node) GetAttribute(key string) (string, bool) {
	for _, a := range n.h.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(key string) bool {
	_, ok := n.GetAttribute(key)
	return ok
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(key string) {
	for i, a := range n.h.Attr {
		if a.Key == key {
			n.h.Attr = append(n.h.Attr[:i], n.h.Attr[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the attribute list in insertion order.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.h.Attr))
	for i, a := range n.h.Attr {
		out[i] = Attr{Key: a.Key, Val: a.Val}
	}
	return out
}

// ClassName returns the class attribute.
func (n *Node) ClassName() string {
	v, _ := n.GetAttribute("class")
	return v
}

// SetClassName sets the class attribute; an empty value removes it.
func (n *Node) SetClassName(class string) {
	if class == "" {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", class)
}

// Style returns the parsed inline style declarations.
func (n *Node) Style() map[string]string {
	v, _ := n.GetAttribute("style")
	return parseStyle(v)
}

// SetStyleText replaces the inline style with raw CSS text.
func (n *Node) SetStyleText(css string) {
	if css == "" {
		n.RemoveAttribute("style")
		return
	}
	n.SetAttribute("style", css)
}

// AssignStyle merges declarations into the inline style. An empty value
// removes the property.
func (n *Node) AssignStyle(decls map[string]string) {
	style := n.Style()
	for k, v := range decls {
		if v == "" {
			delete(style, k)
			continue
		}
		style[k] = v
	}
	n.SetStyleText(formatStyle(style))
}

func parseStyle(css string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(css, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// formatStyle renders declarations in key order so output is stable.
func formatStyle(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(style[k])
		b.WriteString(";")
	}
	return b.String()
}
