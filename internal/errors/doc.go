// Package errors provides the coded error type used across weft.
//
// Every failure the runtime reports belongs to a registered code (e.g.
// "W002") that maps to a category, a short message and a longer detail.
// Public packages expose their failures as template errors built with New;
// errors.Is matches any error carrying the same code, so callers can test
// for a failure class without caring about the wrapped cause:
//
//	if errors.Is(err, hooks.ErrHookOrder) {
//	    // a component called its hooks in a different order
//	}
//
// Templates are never mutated: Wrap, WithDetail and WithSuggestion return
// copies.
package errors
