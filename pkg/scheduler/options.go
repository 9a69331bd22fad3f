package scheduler

import (
	"log/slog"
	"time"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/reconcile"
	"github.com/vango-dev/weft/pkg/vdom"
	"go.opentelemetry.io/otel/trace"
)

// Phase names the kind of commit an observer sees.
type Phase string

const (
	PhaseMount   Phase = "mount"
	PhaseUpdate  Phase = "update"
	PhaseUnmount Phase = "unmount"
)

// CommitInfo describes one committed change to a root.
type CommitInfo struct {
	RootID    string
	Container *dom.Node
	Phase     Phase
	Tree      *vdom.Tree // nil after unmount
	Stats     reconcile.Stats
	Duration  time.Duration
}

// Observer is notified after every commit.
type Observer func(CommitInfo)

// Recorder receives runtime measurements. *metrics.Collector implements it.
type Recorder interface {
	Build(phase string, d time.Duration, err error)
	Commit(s reconcile.Stats)
	Flush(requests, rebuilds int)
	Effects(err error)
	Roots(n int)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime logger. Hook instances log effect failures
// through it.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithMetrics sets the recorder for runtime measurements.
func WithMetrics(r Recorder) Option {
	return func(rt *Runtime) {
		rt.metrics = r
	}
}

// WithTracer sets the tracer for mount, flush and effect spans.
// Default: otel.Tracer("weft").
func WithTracer(t trace.Tracer) Option {
	return func(rt *Runtime) {
		if t != nil {
			rt.tracer = t
		}
	}
}

// WithoutPaint runs effects from a microtask instead of a paint frame.
func WithoutPaint() Option {
	return func(rt *Runtime) {
		rt.paint = false
	}
}

// WithObserver adds a commit observer.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observers = append(rt.observers, o)
		}
	}
}

// WithLoop makes the runtime schedule onto l instead of a private loop.
func WithLoop(l *Loop) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.loop = l
		}
	}
}

// WithFrameInterval sets how often Run paints. Default: 16ms.
func WithFrameInterval(d time.Duration) Option {
	return func(rt *Runtime) {
		if d > 0 {
			rt.frameInterval = d
		}
	}
}

// WithDispatchBuffer sets the capacity of the Dispatch queue. Default: 256.
func WithDispatchBuffer(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.dispatchSize = n
		}
	}
}

// RenderOption configures a single Render call.
type RenderOption func(*renderConfig)

type renderConfig struct {
	portal bool
}

// AsPortal permits rendering into a container that already holds a root.
// The container must still be empty.
func AsPortal() RenderOption {
	return func(c *renderConfig) {
		c.portal = true
	}
}
