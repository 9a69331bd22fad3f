package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/weft/pkg/dom"
)

// Node is a declared node. It is never mutated once built; runtime bindings
// live on the Live record created for it during a build pass.
type Node struct {
	Kind     Kind
	Tag      string     // KindElement
	Comp     *Component // KindComponent
	Target   *dom.Node  // KindPortal
	Props    Props
	Key      any
	Children []any // *Node or primitive, normalized
}

// Props holds attributes, listeners and component inputs.
type Props map[string]any

// Attr is a single prop, used as an argument to H.
type Attr struct {
	Key   string
	Value any
}

// fragmentType marks H calls that build a fragment.
type fragmentType struct{}

// FragmentType can be passed to H to build a fragment.
var FragmentType = fragmentType{}

// H builds a declared node. typ is a tag name, a *Component or FragmentType.
//
// Arguments can be: Props, Attr, []Attr (merged into props, later wins) or
// children (*Node, *Component, []*Node, []any, strings, numbers, bools, nil).
// A "key" prop becomes the node's Key and is removed from Props.
func H(typ any, args ...any) *Node {
	n := &Node{}
	switch t := typ.(type) {
	case string:
		n.Kind = KindElement
		n.Tag = t
	case *Component:
		n.Kind = KindComponent
		n.Comp = t
	case fragmentType:
		n.Kind = KindFragment
	default:
		panic(fmt.Sprintf("vdom: unsupported node type %T", typ))
	}

	props, children := splitArgs(args)
	if k, ok := props["key"]; ok {
		n.Key = k
		delete(props, "key")
	}
	n.Props = props
	n.Children = Normalize(children)
	return n
}

// El builds an element node.
func El(tag string, args ...any) *Node { return H(tag, args...) }

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node { return H(FragmentType, children...) }

func splitArgs(args []any) (Props, []any) {
	props := make(Props)
	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case Props:
			for k, val := range v {
				props[k] = val
			}
		case Attr:
			if v.Key != "" {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					props[a.Key] = a.Value
				}
			}
		default:
			children = append(children, arg)
		}
	}
	return props, children
}

// Normalize flattens nested child slices, turns nil and bool children into
// "" and wraps bare *Component values into component nodes. Order is kept.
func Normalize(children []any) []any {
	out := make([]any, 0, len(children))
	var walk func([]any)
	walk = func(items []any) {
		for _, c := range items {
			switch v := c.(type) {
			case nil, bool:
				out = append(out, "")
			case *Node:
				if v == nil {
					out = append(out, "")
				} else {
					out = append(out, v)
				}
			case *Component:
				if v == nil {
					out = append(out, "")
				} else {
					out = append(out, H(v))
				}
			case []any:
				walk(v)
			case []*Node:
				for _, n := range v {
					walk([]any{n})
				}
			case []string:
				for _, s := range v {
					out = append(out, s)
				}
			default:
				out = append(out, v)
			}
		}
	}
	walk(children)
	return out
}

// ToText converts a primitive child to the text it renders as.
func ToText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Children returns the children passed to a component.
func (p Props) Children() []any {
	if c, ok := p["children"].([]any); ok {
		return c
	}
	return nil
}

// String returns the prop as a string, or "" when absent.
func (p Props) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return ToText(v)
}

// Int returns an integer prop, or 0 when absent or not an int.
func (p Props) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Prop returns p[key] as T, or T's zero value.
func Prop[T any](p Props, key string) T {
	v, _ := p[key].(T)
	return v
}

// Textf formats a text child.
func Textf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// If returns node if cond is true, nil otherwise.
func If(cond bool, node any) any {
	if cond {
		return node
	}
	return nil
}

// IfElse returns a if cond is true, b otherwise.
func IfElse(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// Map renders each item with fn.
func Map[T any](items []T, fn func(T) any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
