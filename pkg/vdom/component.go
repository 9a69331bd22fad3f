package vdom

import "github.com/vango-dev/weft/pkg/hooks"

// RenderFunc renders a component occurrence. props includes "children".
// The result is the component's single child: a *Node, a primitive or nil.
type RenderFunc func(props Props) any

// Component is a function component definition. Occurrences are matched
// across renders by *Component identity.
type Component struct {
	name   string
	render RenderFunc

	// provides is set on context Providers.
	provides hooks.ContextKey
}

// Define creates a component definition.
func Define(name string, render RenderFunc) *Component {
	return &Component{name: name, render: render}
}

// Name returns the component's display name.
func (c *Component) Name() string { return c.name }

// Render invokes the component function.
func (c *Component) Render(props Props) any { return c.render(props) }

// Provides returns the context a Provider component supplies, or nil.
func (c *Component) Provides() hooks.ContextKey { return c.provides }

// String implements fmt.Stringer.
func (c *Component) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}
