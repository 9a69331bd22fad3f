package vdom

import werrors "github.com/vango-dev/weft/internal/errors"

var (
	// ErrMissingPortalTarget is returned when a portal's target is nil or
	// its selector matches nothing.
	ErrMissingPortalTarget = werrors.New("W005")

	// ErrProviderArity is raised when a context Provider does not receive
	// exactly one child.
	ErrProviderArity = werrors.New("W006")
)
