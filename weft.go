// Package weft provides the public API for the weft reconciler.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/weft"
//
// Usage:
//
//	var Counter = weft.Define("Counter", func(weft.Props) any {
//	    count, setCount := weft.UseState(0)
//	    return vdom.Div(
//	        vdom.Span(vdom.Textf("Count: %d", count)),
//	        vdom.Button(vdom.OnClick(func() { setCount.Set(count + 1) }), "+"),
//	    )
//	})
//
//	doc := weft.NewDocument()
//	err := weft.Render(doc.Body(), weft.H(Counter))
package weft

import (
	"sync"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// =============================================================================
// Nodes (re-export from pkg/vdom)
// =============================================================================

// Node is a declared node.
type Node = vdom.Node

// Props are the properties passed to an element or component.
type Props = vdom.Props

// Component is a named function component.
type Component = vdom.Component

// Tree is a committed render tree.
type Tree = vdom.Tree

// Context is a value channel between a Provider and its descendants.
type Context[T any] = vdom.Context[T]

// H creates a declared node for a tag name, a component or a fragment.
//
// Example:
//
//	weft.H("ul", weft.Props{"className": "list"}, items)
//	weft.H(Card, weft.Props{"title": "Hello"})
func H(typ any, args ...any) *Node {
	return vdom.H(typ, args...)
}

// Fragment groups children without an element of its own.
func Fragment(children ...any) *Node {
	return vdom.Fragment(children...)
}

// Define names a render function as a component.
func Define(name string, render func(Props) any) *Component {
	return vdom.Define(name, render)
}

// CreateContext creates a context with a default value. The optional debug
// name prefixes the context id and names its Provider.
//
// Example:
//
//	var Theme = weft.CreateContext("light", "theme")
//	Theme.Provide("dark", weft.H(Toolbar))
func CreateContext[T any](defaultValue T, debugName ...string) *Context[T] {
	return vdom.CreateContext(defaultValue, debugName...)
}

// CreatePortal places children under target instead of under the logical
// parent. It fails with vdom.ErrMissingPortalTarget for a nil target.
func CreatePortal(target *dom.Node, children ...any) (*Node, error) {
	return vdom.CreatePortal(target, children...)
}

// CreatePortalSelector resolves selector against root and portals children
// into the first match.
func CreatePortalSelector(root vdom.Querier, selector string, children ...any) (*Node, error) {
	return vdom.CreatePortalSelector(root, selector, children...)
}

// =============================================================================
// Hooks (re-export from pkg/hooks)
// =============================================================================

// Cleanup is returned by an effect to undo it.
type Cleanup = hooks.Cleanup

// Deps is an effect or memo dependency list.
type Deps = hooks.Deps

// Setter updates one state slot.
type Setter[T any] = hooks.Setter[T]

// Ref is a mutable box that survives renders.
type Ref[T any] = hooks.Ref[T]

// On builds a dependency list. On() with no values runs an effect once.
func On(values ...any) Deps {
	return hooks.On(values...)
}

// UseState returns the current value of a state slot and its setter.
func UseState[T any](initial T) (T, Setter[T]) {
	return hooks.UseState(initial)
}

// UseLazyState is UseState with an initializer that runs on first render only.
func UseLazyState[T any](initial func() T) (T, Setter[T]) {
	return hooks.UseLazyState(initial)
}

// UseEffect schedules fn to run after the render is committed. With nil
// deps it runs after every render; otherwise only when deps change.
func UseEffect(fn func() Cleanup, deps Deps) {
	hooks.UseEffect(fn, deps)
}

// UseMemo caches factory's result until deps change.
func UseMemo[T any](factory func() T, deps Deps) T {
	return hooks.UseMemo(factory, deps)
}

// UseCallback keeps fn's identity stable until deps change.
func UseCallback[F any](fn F, deps Deps) F {
	return hooks.UseCallback(fn, deps)
}

// UseRef returns a ref that persists across renders.
func UseRef[T any](initial T) *Ref[T] {
	return hooks.UseRef(initial)
}

// =============================================================================
// Runtime (re-export from pkg/scheduler)
// =============================================================================

// Runtime mounts roots and schedules their updates.
type Runtime = scheduler.Runtime

// Option configures a Runtime.
type Option = scheduler.Option

// NewRuntime creates an independent runtime.
func NewRuntime(opts ...Option) *Runtime {
	return scheduler.New(opts...)
}

// NewDocument creates an empty output document.
func NewDocument() *dom.Document {
	return dom.NewDocument()
}

var (
	defaultRuntime     *Runtime
	defaultRuntimeOnce sync.Once
)

// Default returns the process-wide runtime used by Render and Unmount.
func Default() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime = scheduler.New()
	})
	return defaultRuntime
}

// Render mounts node into container on the default runtime.
func Render(container *dom.Node, node any) error {
	return Default().Render(container, node)
}

// RenderPortal mounts node into container on the default runtime even if
// container already holds a root.
func RenderPortal(container *dom.Node, node any) error {
	return Default().Render(container, node, scheduler.AsPortal())
}

// Unmount removes the root in container from the default runtime.
func Unmount(container *dom.Node) bool {
	return Default().Unmount(container)
}

// Tick applies pending updates and runs one frame of effects on the
// default runtime.
func Tick() error {
	return Default().Tick()
}
