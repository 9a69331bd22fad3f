package reconcile

import (
	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/vdom"
)

type patcher struct {
	doc   *dom.Document
	stats Stats
}

// Sync brings container's contents from old to next. With a nil old tree,
// next is materialized into container. Hook instances present in old but
// not in next are disposed and reported in Stats.Disposed.
func Sync(container *dom.Node, old, next *vdom.Tree) Stats {
	p := &patcher{doc: container.Document()}
	if old == nil {
		p.create(next, container, nil)
	} else {
		p.patch(old, next, container, nil)
		p.stats.Disposed = disposeLeaving(old, next)
	}
	return p.stats
}

// Teardown removes tree's output from container, clears the container and
// disposes every hook instance in tree.
func Teardown(container *dom.Node, tree *vdom.Tree) Stats {
	p := &patcher{doc: container.Document()}
	if tree != nil {
		p.remove(tree)
		p.stats.Disposed = disposeLeaving(tree, nil)
	}
	container.Clear()
	return p.stats
}

// disposeLeaving disposes instances reachable from old but not from next.
func disposeLeaving(old, next *vdom.Tree) []*hooks.Instance {
	keep := make(map[*hooks.Instance]bool)
	if next != nil {
		for _, in := range next.Instances() {
			keep[in] = true
		}
	}
	var gone []*hooks.Instance
	for _, in := range old.Instances() {
		if keep[in] {
			continue
		}
		in.Dispose()
		gone = append(gone, in)
	}
	return gone
}

// create materializes t under host, before the given node (nil appends).
func (p *patcher) create(t *vdom.Tree, host, before *dom.Node) {
	if t.IsLeaf() {
		txt := p.doc.CreateTextNode(t.TextValue())
		host.InsertBefore(txt, before)
		t.Text = txt
		p.stats.Created++
		return
	}

	l := t.Live
	switch l.Kind {
	case vdom.KindElement:
		el := p.doc.CreateElement(l.Tag)
		l.Element = el
		p.stats.PropOps += vdom.ApplyProps(el, l.Props)
		for _, c := range l.Children {
			p.create(c, el, nil)
		}
		host.InsertBefore(el, before)
		p.stats.Created++

	case vdom.KindPortal:
		for _, c := range l.Children {
			p.create(c, l.Target, nil)
		}

	default:
		for _, c := range l.Children {
			p.create(c, host, before)
		}
	}
}

// patch moves the output of old to next. host is the element hosting old's
// output and after the first node following it, used when next must be
// created from scratch.
func (p *patcher) patch(old, next *vdom.Tree, host, after *dom.Node) {
	if old.IsLeaf() && next.IsLeaf() {
		next.Text = old.Text
		text := next.TextValue()
		if old.TextValue() == text {
			return
		}
		if next.Text != nil {
			next.Text.SetTextContent(text)
			p.stats.TextUpdates++
			return
		}
		p.create(next, host, after)
		return
	}

	if old.IsLeaf() || next.IsLeaf() || !vdom.SameType(old.Live.Node, next.Live.Node) {
		p.replace(old, next, host, after)
		return
	}

	o, n := old.Live, next.Live
	switch n.Kind {
	case vdom.KindPortal:
		if o.Target == n.Target {
			p.patchChildren(n.Target, o.Children, n.Children, nil)
			return
		}
		o.Target.Clear()
		p.stats.Removed++
		p.clearPortals(o.Children)
		for _, c := range n.Children {
			p.create(c, n.Target, nil)
		}

	case vdom.KindComponent:
		if len(o.Children) > 0 && len(n.Children) > 0 {
			p.patch(o.Children[0], n.Children[0], host, after)
		}

	case vdom.KindFragment:
		p.patchChildren(host, o.Children, n.Children, after)

	case vdom.KindElement:
		n.Element = o.Element
		p.stats.PropOps += vdom.UpdateProps(n.Element, o.Props, n.Props)
		p.patchChildren(n.Element, o.Children, n.Children, nil)
	}
}

// patchChildren diffs two child lists by position. end is the node that
// follows the list inside host (nil when the list runs to host's end).
func (p *patcher) patchChildren(host *dom.Node, olds, news []*vdom.Tree, end *dom.Node) {
	count := len(olds)
	if len(news) > count {
		count = len(news)
	}
	for i := 0; i < count; i++ {
		switch {
		case i >= len(olds):
			p.create(news[i], host, end)
		case i >= len(news):
			p.remove(olds[i])
		default:
			p.patch(olds[i], news[i], host, firstNodeOf(olds[i+1:], end))
		}
	}
}

// replace swaps old's output for next's at the position marked by after.
// old is detached first, so a portal target shared by both keeps next's
// content.
func (p *patcher) replace(old, next *vdom.Tree, host, after *dom.Node) {
	p.remove(old)
	p.create(next, host, after)
	p.stats.Replaced++
}

// remove detaches t's output. A portal clears its target.
func (p *patcher) remove(t *vdom.Tree) {
	if t.IsLeaf() {
		if t.Text != nil {
			t.Text.Remove()
			p.stats.Removed++
		}
		return
	}

	l := t.Live
	switch l.Kind {
	case vdom.KindElement:
		if l.Element != nil {
			l.Element.Remove()
			p.stats.Removed++
		}
		p.clearPortals(l.Children)
	case vdom.KindPortal:
		l.Target.Clear()
		p.stats.Removed++
		p.clearPortals(l.Children)
	default:
		for _, c := range l.Children {
			p.remove(c)
		}
	}
}

// clearPortals empties the targets of portals nested in trees whose output
// has already been detached.
func (p *patcher) clearPortals(trees []*vdom.Tree) {
	for _, t := range trees {
		t.Walk(func(n *vdom.Tree) bool {
			if n.Kind() == vdom.KindPortal {
				n.Live.Target.Clear()
				p.stats.Removed++
			}
			return true
		})
	}
}

// firstNode returns the first output node t contributes to its host, or
// nil. Portals contribute nothing to their host.
func firstNode(t *vdom.Tree) *dom.Node {
	if t.IsLeaf() {
		return t.Text
	}
	l := t.Live
	switch l.Kind {
	case vdom.KindElement:
		return l.Element
	case vdom.KindPortal:
		return nil
	default:
		return firstNodeOf(l.Children, nil)
	}
}

// firstNodeOf returns the first output node of trees, or fallback.
func firstNodeOf(trees []*vdom.Tree, fallback *dom.Node) *dom.Node {
	for _, t := range trees {
		if n := firstNode(t); n != nil {
			return n
		}
	}
	return fallback
}
