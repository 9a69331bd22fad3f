package scheduler

import werrors "github.com/vango-dev/weft/internal/errors"

var (
	// ErrAlreadyMounted is returned by Render for a container that already
	// holds a root.
	ErrAlreadyMounted = werrors.New("W003")

	// ErrNonEmptyContainer is returned by Render for a container with children.
	ErrNonEmptyContainer = werrors.New("W004")

	// ErrNilContainer is returned by Render for a nil container.
	ErrNilContainer = werrors.New("W008")

	// ErrLoopNotSettled is returned by Loop.Settle when work remains after
	// the frame budget.
	ErrLoopNotSettled = werrors.New("W010")
)
