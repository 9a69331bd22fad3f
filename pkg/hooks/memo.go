package hooks

// UseMemo returns factory's result, recomputing it only when deps change.
// With nil deps it recomputes on every render.
func UseMemo[T any](factory func() T, deps Deps) T {
	f := active("UseMemo")
	cell, fresh := claim(f, KindMemo, func() *memoCell[T] {
		return &memoCell[T]{value: factory(), deps: deps}
	})
	if fresh {
		return cell.value
	}
	if deps == nil || !DepsEqual(cell.deps, deps) {
		cell.value = factory()
		cell.deps = deps
	}
	return cell.value
}

// UseCallback returns fn as it was when deps last changed, so the returned
// value keeps its identity across renders.
func UseCallback[F any](fn F, deps Deps) F {
	return UseMemo(func() F { return fn }, deps)
}

// Ref is a mutable box that survives re-renders. Writing Current never
// schedules an update.
type Ref[T any] struct {
	Current T
}

// UseRef returns the same *Ref for the lifetime of the instance.
func UseRef[T any](initial T) *Ref[T] {
	f := active("UseRef")
	cell, _ := claim(f, KindRef, func() *refCell[T] {
		return &refCell[T]{ref: &Ref[T]{Current: initial}}
	})
	return cell.ref
}
