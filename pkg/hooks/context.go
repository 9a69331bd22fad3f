package hooks

// MaxContextDepth bounds the ancestor walk performed by UseContext.
var MaxContextDepth = 150

// Scope is a node of the live tree as seen by UseContext.
type Scope interface {
	// ParentScope returns the logical parent, or nil at the root.
	ParentScope() Scope

	// ContextValue returns the value a Provider stored on this node for the
	// context with the given id.
	ContextValue(id string) (any, bool)
}

// ContextKey identifies a context definition.
type ContextKey interface {
	ContextID() string
	ContextDefault() any
}

// UseContext returns the value of the nearest Provider for key above the
// rendering component, or key's default when none is found within
// MaxContextDepth ancestors. It does not consume a slot.
func UseContext(key ContextKey) any {
	f := active("UseContext")
	return Lookup(f.scope, key)
}

// Lookup resolves key from scope upward without requiring a render.
func Lookup(scope Scope, key ContextKey) any {
	id := key.ContextID()
	for depth := 0; scope != nil && depth < MaxContextDepth; depth++ {
		if v, ok := scope.ContextValue(id); ok && v != nil {
			return v
		}
		scope = scope.ParentScope()
	}
	return key.ContextDefault()
}
