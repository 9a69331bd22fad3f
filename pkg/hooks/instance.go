package hooks

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

var instanceIDs atomic.Uint64

// Instance is the persistent state of one component occurrence: its ordered
// hook slots plus lifecycle flags.
//
// An Instance is confined to the goroutine of the runtime that renders it.
type Instance struct {
	id   uint64
	name string

	slots   []slot
	renders int

	mounted   bool
	unmounted bool

	// schedule is bound by the runtime after the first successful render
	// into a live root.
	schedule func()

	logger *slog.Logger
}

// NewInstance creates an empty instance for a component named name.
func NewInstance(name string) *Instance {
	return &Instance{
		id:   instanceIDs.Add(1),
		name: name,
	}
}

// ID returns the instance's unique identifier.
func (in *Instance) ID() uint64 { return in.id }

// Name returns the component name the instance was created for.
func (in *Instance) Name() string { return in.name }

// Mounted reports whether the instance has been committed to a live root.
func (in *Instance) Mounted() bool { return in.mounted }

// Unmounted reports whether the instance has left the tree or failed.
func (in *Instance) Unmounted() bool { return in.unmounted }

// RenderCount returns the number of successful renders.
func (in *Instance) RenderCount() int { return in.renders }

// SlotCount returns the number of hook slots allocated.
func (in *Instance) SlotCount() int { return len(in.slots) }

// SetLogger sets the logger used to report effect failures.
func (in *Instance) SetLogger(l *slog.Logger) { in.logger = l }

// BindUpdate sets the callback state setters use to request a re-render.
func (in *Instance) BindUpdate(fn func()) { in.schedule = fn }

// Bound reports whether an update callback has been bound.
func (in *Instance) Bound() bool { return in.schedule != nil }

// MarkMounted flags the instance as committed. It has no effect once the
// instance is unmounted.
func (in *Instance) MarkMounted() {
	if !in.unmounted {
		in.mounted = true
	}
}

// MarkUnmounted flags the instance as gone. Setters stop scheduling work.
func (in *Instance) MarkUnmounted() {
	in.mounted = false
	in.unmounted = true
}

func (in *Instance) label() string {
	if in.name == "" {
		return fmt.Sprintf("component#%d", in.id)
	}
	return fmt.Sprintf("%s#%d", in.name, in.id)
}

func (in *Instance) log() *slog.Logger {
	if in.logger != nil {
		return in.logger
	}
	return slog.Default()
}

// requestUpdate is called by setters after a state change.
func (in *Instance) requestUpdate() {
	if in.unmounted || in.schedule == nil {
		return
	}
	in.schedule()
}

// Render invokes fn with the instance installed as the current hook context
// and scope as the node hooks like UseContext start from.
//
// A panic carrying an error (including hook failures) is returned as err.
// Other panics propagate to the caller. A hook-order violation also marks
// the instance unmounted.
func (in *Instance) Render(scope Scope, fn func() any) (out any, err error) {
	f := &frame{inst: in, scope: scope}
	restore := pushFrame(f)
	defer func() {
		restore()
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			out, err = nil, e
		}
		if errors.Is(err, ErrHookOrder) {
			in.MarkUnmounted()
		}
	}()

	out = fn()

	if in.renders > 0 && f.index < len(in.slots) {
		return nil, ErrHookOrder.WithDetailf("%s: rendered %d hooks, previous render used %d", in.label(), f.index, len(in.slots))
	}
	in.renders++
	return out, nil
}

// HasPendingEffects reports whether any effect is due to run.
func (in *Instance) HasPendingEffects() bool {
	if in.unmounted {
		return false
	}
	for _, s := range in.slots {
		if e, ok := s.(*effectCell); ok && e.shouldRun {
			return true
		}
	}
	return false
}

// RunEffects runs due effects in slot order. Each effect's previous cleanup
// runs before its new body.
//
// If an effect panics, the failure is logged, the instance is marked
// unmounted and the error is returned; later effects do not run.
func (in *Instance) RunEffects() error {
	if in.unmounted {
		return nil
	}
	for i, s := range in.slots {
		e, ok := s.(*effectCell)
		if !ok || !e.shouldRun {
			continue
		}
		e.shouldRun = false
		if err := in.runEffect(i, e); err != nil {
			in.log().Error("effect failed",
				"component", in.label(),
				"slot", i,
				"error", err,
			)
			in.MarkUnmounted()
			return err
		}
	}
	return nil
}

func (in *Instance) runEffect(i int, e *effectCell) (err error) {
	defer func() {
		if r := recover(); r != nil {
			werr := ErrEffectFailed.WithDetailf("%s: effect at slot %d", in.label(), i)
			if cause, ok := r.(error); ok {
				err = werr.Wrap(cause)
			} else {
				err = werr.Wrap(fmt.Errorf("%v", r))
			}
		}
	}()

	e.deps, e.ran = e.nextDeps, true
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		c()
	}
	if e.next != nil {
		e.cleanup = e.next()
	}
	return nil
}

// Dispose runs every pending cleanup and marks the instance unmounted.
// Cleanups that panic are logged and skipped.
func (in *Instance) Dispose() {
	if in.unmounted && !in.hasCleanups() {
		return
	}
	in.MarkUnmounted()
	for i, s := range in.slots {
		e, ok := s.(*effectCell)
		if !ok || e.cleanup == nil {
			continue
		}
		c := e.cleanup
		e.cleanup = nil
		e.shouldRun = false
		func() {
			defer func() {
				if r := recover(); r != nil {
					in.log().Error("effect cleanup failed",
						"component", in.label(),
						"slot", i,
						"panic", r,
					)
				}
			}()
			c()
		}()
	}
}

func (in *Instance) hasCleanups() bool {
	for _, s := range in.slots {
		if e, ok := s.(*effectCell); ok && e.cleanup != nil {
			return true
		}
	}
	return false
}
