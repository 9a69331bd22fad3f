package scheduler

import (
	"context"
	"runtime/debug"
	"time"
)

// Dispatch queues fn to run on the goroutine executing Run. It is safe to
// call from any goroutine. Callbacks are dropped, with a warning, when the
// queue is full. Dispatch reports whether fn was queued.
func (rt *Runtime) Dispatch(fn func()) bool {
	select {
	case rt.dispatchCh <- fn:
		return true
	default:
		rt.logger.Warn("dispatch queue full, discarding callback")
		return false
	}
}

// Run drives the runtime until ctx is done: dispatched callbacks run as
// they arrive, each followed by a microtask checkpoint, and a paint frame
// runs every frame interval. Task errors are logged, not returned.
//
// Render, Unmount and every state setter must be called from inside Run
// (through Dispatch) once Run has started.
func (rt *Runtime) Run(ctx context.Context) error {
	rt.ctx = ctx
	defer func() { rt.ctx = context.Background() }()

	ticker := time.NewTicker(rt.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-rt.dispatchCh:
			rt.executeDispatch(fn)

		case <-ticker.C:
			if err := rt.loop.Paint(); err != nil {
				rt.logger.Error("paint failed", "error", err)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// executeDispatch runs fn with panic recovery, then drains microtasks so
// updates requested by fn are flushed before the next callback.
func (rt *Runtime) executeDispatch(fn func()) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				rt.logger.Error("dispatch panic",
					"panic", r,
					"stack", string(debug.Stack()))
			}
		}()
		fn()
	}()

	if err := rt.loop.RunMicrotasks(); err != nil {
		rt.logger.Error("update failed", "error", err)
	}
}
