package hooks

// Setter updates a state slot. Setters are stable for the lifetime of the
// instance and may be listed in dependency lists.
type Setter[T any] struct {
	cell *stateCell[T]
	inst *Instance
}

// Set stores v and requests a re-render, unless v is Same as the current
// value.
func (s Setter[T]) Set(v T) {
	if s.cell == nil {
		return
	}
	if Same(s.cell.value, v) {
		return
	}
	s.cell.value = v
	s.inst.requestUpdate()
}

// Update stores fn(current) under the same rules as Set.
func (s Setter[T]) Update(fn func(prev T) T) {
	if s.cell == nil {
		return
	}
	s.Set(fn(s.cell.value))
}

// Get returns the current value without subscribing to anything. It is
// useful inside event handlers that outlive the render that created them.
func (s Setter[T]) Get() T {
	if s.cell == nil {
		var zero T
		return zero
	}
	return s.cell.value
}

// UseState returns the slot's current value and its setter. initial is used
// only on the first render.
func UseState[T any](initial T) (T, Setter[T]) {
	return useState("UseState", func() T { return initial })
}

// UseLazyState is UseState with an initializer evaluated only on the first
// render.
func UseLazyState[T any](initial func() T) (T, Setter[T]) {
	return useState("UseLazyState", initial)
}

func useState[T any](hook string, initial func() T) (T, Setter[T]) {
	f := active(hook)
	cell, _ := claim(f, KindState, func() *stateCell[T] {
		c := &stateCell[T]{value: initial()}
		c.setter = Setter[T]{cell: c, inst: f.inst}
		return c
	})
	return cell.value, cell.setter
}
