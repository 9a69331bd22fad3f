package hooks

import werrors "github.com/vango-dev/weft/internal/errors"

var (
	// ErrInvalidHookContext is raised when a hook runs outside a component render.
	ErrInvalidHookContext = werrors.New("W001")

	// ErrHookOrder is raised when a slot's kind (or type) differs from the
	// previous render, or when the number of hooks changes.
	ErrHookOrder = werrors.New("W002")

	// ErrEffectFailed wraps a panic raised by an effect body.
	ErrEffectFailed = werrors.New("W007")
)
