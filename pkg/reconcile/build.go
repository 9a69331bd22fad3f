package reconcile

import (
	"fmt"

	werrors "github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Build produces the render tree for node. prev is the tree previously
// built at the same position (nil on first mount) and parent the live node
// the result hangs under (nil at the root).
//
// Errors raised by components, including hook failures and panics, abort the
// build and are returned.
func Build(node any, prev *vdom.Tree, parent *vdom.Live) (t *vdom.Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			if e, ok := r.(error); ok {
				err = ErrComponentPanic.Wrap(e)
				return
			}
			err = ErrComponentPanic.WithDetailf("%v", r)
		}
	}()
	return build(node, prev, parent)
}

func build(node any, prev *vdom.Tree, parent *vdom.Live) (*vdom.Tree, error) {
	n, ok := node.(*vdom.Node)
	if !ok {
		return vdom.Leaf(node), nil
	}
	if n == nil {
		return vdom.Leaf(""), nil
	}

	live := vdom.NewLive(n, parent)

	var old *vdom.Live
	if prev != nil && !prev.IsLeaf() && vdom.SameType(prev.Live.Node, n) {
		old = prev.Live
		live.Element = old.Element
	}

	var children []any
	switch n.Kind {
	case vdom.KindComponent:
		out, err := renderComponent(live, old)
		if err != nil {
			return nil, err
		}
		children = []any{out}

	case vdom.KindPortal:
		live.TreeParent = parent
		children = n.Children

	case vdom.KindElement, vdom.KindFragment:
		children = n.Children

	default:
		return nil, fmt.Errorf("reconcile: unknown node kind %s", n.Kind)
	}

	var previous []*vdom.Tree
	if old != nil {
		previous = old.Children
	}
	live.Children = make([]*vdom.Tree, len(children))
	for i, c := range children {
		var p *vdom.Tree
		if i < len(previous) {
			p = previous[i]
		}
		t, err := build(c, p, live)
		if err != nil {
			return nil, err
		}
		live.Children[i] = t
	}
	return vdom.Interior(live), nil
}

// renderComponent invokes live's component with the hook instance carried
// from old, or a new one, and returns its single rendered child.
func renderComponent(live, old *vdom.Live) (any, error) {
	comp := live.Comp

	var inst *hooks.Instance
	if old != nil {
		inst = old.Hooks
	}
	if inst == nil {
		inst = hooks.NewInstance(comp.Name())
	}
	live.Hooks = inst

	if key := comp.Provides(); key != nil {
		live.Context = vdom.ProvidedValue(key, live.Props)
	}

	props := make(vdom.Props, len(live.Props)+1)
	for k, v := range live.Props {
		props[k] = v
	}
	props["children"] = live.Node.Children

	out, err := inst.Render(live, func() any { return comp.Render(props) })
	if err != nil {
		if werrors.Code(err) == "" {
			err = ErrComponentPanic.WithDetailf("component %s", comp.Name()).Wrap(err)
		}
		return nil, err
	}
	return single(out), nil
}

// single reduces a component result to one child. Slices become a fragment.
func single(out any) any {
	switch v := out.(type) {
	case []any, []*vdom.Node, []string:
		return vdom.Fragment(v)
	}
	norm := vdom.Normalize([]any{out})
	if len(norm) == 1 {
		return norm[0]
	}
	return vdom.Fragment(norm...)
}
