package vdom

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vango-dev/weft/pkg/hooks"
)

// Context is a typed context definition. Providers store a value on their
// occurrence; Use resolves the nearest one above the rendering component.
type Context[T any] struct {
	id   string
	def  T
	name string

	// Provider is the component that supplies a value to its single child.
	Provider *Component
}

// CreateContext creates a context with a default value. The optional
// debugName prefixes the generated id.
func CreateContext[T any](defaultValue T, debugName ...string) *Context[T] {
	id := uuid.NewString()
	name := "Context"
	if len(debugName) > 0 && debugName[0] != "" {
		name = debugName[0]
		id = name + "-" + id
	}

	c := &Context[T]{id: id, def: defaultValue, name: name}
	c.Provider = &Component{
		name:     name + ".Provider",
		render:   c.renderProvider,
		provides: c,
	}
	return c
}

// ID returns the unique context id.
func (c *Context[T]) ID() string { return c.id }

// Default returns the value used when no Provider is found.
func (c *Context[T]) Default() T { return c.def }

// ContextID implements hooks.ContextKey.
func (c *Context[T]) ContextID() string { return c.id }

// ContextDefault implements hooks.ContextKey.
func (c *Context[T]) ContextDefault() any { return c.def }

// Use returns the nearest provided value. It must be called during a
// component render.
func (c *Context[T]) Use() T {
	if v, ok := hooks.UseContext(c).(T); ok {
		return v
	}
	return c.def
}

// Provide builds a Provider occurrence around child.
func (c *Context[T]) Provide(value T, child any) *Node {
	return H(c.Provider, Props{"value": value}, child)
}

func (c *Context[T]) renderProvider(props Props) any {
	children := props.Children()
	if len(children) != 1 {
		panic(ErrProviderArity.WithDetailf("%s.Provider received %d children", c.name, len(children)))
	}
	return children[0]
}

// ContextValue is a value supplied by a Provider occurrence.
type ContextValue struct {
	ID    string
	Value any
}

// String implements fmt.Stringer.
func (v *ContextValue) String() string {
	return fmt.Sprintf("%s=%v", v.ID, v.Value)
}

// ProvidedValue resolves the value a Provider occurrence with props stores.
func ProvidedValue(key hooks.ContextKey, props Props) *ContextValue {
	v, ok := props["value"]
	if !ok || v == nil {
		v = key.ContextDefault()
	}
	return &ContextValue{ID: key.ContextID(), Value: v}
}
