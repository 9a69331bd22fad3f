package reconcile

import werrors "github.com/vango-dev/weft/internal/errors"

// ErrComponentPanic wraps a panic raised while a component rendered.
var ErrComponentPanic = werrors.New("W009")
