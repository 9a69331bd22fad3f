// Package hooks gives function components slot-indexed state that persists
// across invocations.
//
// Every component occurrence owns an Instance. While the builder invokes the
// component through Instance.Render, hook calls (UseState, UseEffect,
// UseMemo, UseCallback, UseRef, UseContext) claim the next slot of that
// instance in call order. A slot must hold the same hook kind on every render;
// calling hooks conditionally panics with ErrHookOrder, and calling a hook
// outside Render panics with ErrInvalidHookContext.
//
// Effects are recorded during Render and executed later by RunEffects, once
// the caller has committed the output tree.
package hooks
