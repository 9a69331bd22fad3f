package vdom

import (
	"reflect"

	"github.com/vango-dev/weft/pkg/dom"
)

// Querier finds an element by selector. *dom.Document and *dom.Node both
// implement it.
type Querier interface {
	QuerySelector(sel string) *dom.Node
}

// CreatePortal builds a portal placing children under target.
func CreatePortal(target *dom.Node, children ...any) (*Node, error) {
	if target == nil {
		return nil, ErrMissingPortalTarget.WithDetail("target element is nil")
	}
	if !target.IsElement() {
		return nil, ErrMissingPortalTarget.WithDetailf("target %s is not an element", target.Type())
	}
	return &Node{
		Kind:     KindPortal,
		Target:   target,
		Props:    Props{},
		Children: Normalize(children),
	}, nil
}

// CreatePortalSelector resolves selector under root and builds a portal
// into the first match. A nil root, including a typed nil, matches nothing.
func CreatePortalSelector(root Querier, selector string, children ...any) (*Node, error) {
	var target *dom.Node
	if !isNil(root) {
		target = root.QuerySelector(selector)
	}
	if target == nil {
		return nil, ErrMissingPortalTarget.WithDetailf("no element matches %q", selector)
	}
	return CreatePortal(target, children...)
}

// Portal is CreatePortal for use inside component renders; it panics with
// ErrMissingPortalTarget, which the builder returns as an error.
func Portal(target *dom.Node, children ...any) *Node {
	n, err := CreatePortal(target, children...)
	if err != nil {
		panic(err)
	}
	return n
}

func isNil(q Querier) bool {
	if q == nil {
		return true
	}
	v := reflect.ValueOf(q)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
