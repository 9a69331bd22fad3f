package vdom

import (
	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
)

// Live is a declared node paired with its runtime bindings for one build
// pass. Bindings that must survive a rebuild (Element, Hooks) are carried
// forward by the builder; everything else is recomputed.
type Live struct {
	*Node

	// Element is the output element bound to an element node. It is owned
	// exclusively by this occurrence.
	Element *dom.Node

	// Parent is the logical parent; it is not an ownership edge.
	Parent *Live

	// TreeParent is the declared ancestor of a portal.
	TreeParent *Live

	// Context is set on Provider occurrences.
	Context *ContextValue

	// Hooks is set on component occurrences.
	Hooks *hooks.Instance

	// Children are the materialized child trees. The declared children
	// remain available as Node.Children.
	Children []*Tree
}

// NewLive pairs n with a fresh Live under parent.
func NewLive(n *Node, parent *Live) *Live {
	return &Live{Node: n, Parent: parent}
}

// ParentScope implements hooks.Scope.
func (l *Live) ParentScope() hooks.Scope {
	if l.Parent == nil {
		return nil
	}
	return l.Parent
}

// ContextValue implements hooks.Scope.
func (l *Live) ContextValue(id string) (any, bool) {
	if l.Context == nil || l.Context.ID != id {
		return nil, false
	}
	return l.Context.Value, true
}

// Name returns a short label: the tag, the component name or the kind.
func (l *Live) Name() string {
	switch l.Kind {
	case KindElement:
		return l.Tag
	case KindComponent:
		return l.Comp.Name()
	default:
		return l.Kind.String()
	}
}

// NearestElement returns the output element that hosts l's children's
// output: l's own element, a portal's target, or the nearest ancestor's.
func (l *Live) NearestElement() *dom.Node {
	for cur := l; cur != nil; cur = cur.Parent {
		if cur.Kind == KindPortal {
			return cur.Target
		}
		if cur.Element != nil {
			return cur.Element
		}
	}
	return nil
}

// PortalOrigin returns the logical node a portal was declared under.
func (l *Live) PortalOrigin() *Live {
	if l.TreeParent != nil {
		return l.TreeParent
	}
	return l.Parent
}

// PortalTreePath returns the declared ancestors of a portal, root first.
func (l *Live) PortalTreePath() []*Live {
	var path []*Live
	for cur := l.TreeParent; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsPortalDescendantOf reports whether ancestor is among the declared
// ancestors of the portal l.
func (l *Live) IsPortalDescendantOf(ancestor *Live) bool {
	for cur := l.TreeParent; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// SameType reports whether b can take over a's runtime bindings: equal
// kind, tag or component, and key.
func SameType(a, b *Node) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		if a.Tag != b.Tag {
			return false
		}
	case KindComponent:
		if a.Comp != b.Comp {
			return false
		}
	}
	return hooks.Same(a.Key, b.Key)
}

// Tree is one position of a render tree: a leaf holding a primitive, or an
// interior node holding a Live.
type Tree struct {
	// Value is the primitive of a leaf.
	Value any

	// Text is the output text node bound to a leaf once created.
	Text *dom.Node

	// Live is set on interior trees.
	Live *Live
}

// Leaf returns a leaf tree for v.
func Leaf(v any) *Tree { return &Tree{Value: v} }

// Interior returns an interior tree for l.
func Interior(l *Live) *Tree { return &Tree{Live: l} }

// IsLeaf reports whether t holds a primitive.
func (t *Tree) IsLeaf() bool { return t.Live == nil }

// Kind returns KindText for leaves and the live node's kind otherwise.
func (t *Tree) Kind() Kind {
	if t.IsLeaf() {
		return KindText
	}
	return t.Live.Kind
}

// TextValue returns the text a leaf renders.
func (t *Tree) TextValue() string { return ToText(t.Value) }

// Walk calls fn for t and every descendant, depth first. Returning false
// skips a subtree.
func (t *Tree) Walk(fn func(*Tree) bool) {
	if t == nil || !fn(t) || t.IsLeaf() {
		return
	}
	for _, c := range t.Live.Children {
		c.Walk(fn)
	}
}

// Instances returns every hook instance in t, in tree order.
func (t *Tree) Instances() []*hooks.Instance {
	var out []*hooks.Instance
	t.Walk(func(n *Tree) bool {
		if !n.IsLeaf() && n.Live.Hooks != nil {
			out = append(out, n.Live.Hooks)
		}
		return true
	})
	return out
}
