package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/reconcile"
	"github.com/vango-dev/weft/pkg/vdom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "weft"

// root is a mounted container and the declared node it renders.
type root struct {
	id        string
	container *dom.Node
	node      any
	tree      *vdom.Tree
}

type pendingUpdate struct {
	container *dom.Node
	inst      *hooks.Instance
}

// Runtime mounts roots and schedules their updates.
type Runtime struct {
	loop      *Loop
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   Recorder
	observers []Observer
	paint     bool

	frameInterval time.Duration
	dispatchSize  int
	dispatchCh    chan func()

	// roots is nil until the first Render and again after the last Unmount.
	roots map[*dom.Node]*root

	pending     []pendingUpdate
	queued      map[pendingUpdate]bool
	requests    int
	flushQueued bool

	ctx context.Context
}

// New creates a runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		loop:          NewLoop(),
		logger:        slog.Default(),
		tracer:        otel.Tracer(tracerName),
		paint:         true,
		frameInterval: 16 * time.Millisecond,
		dispatchSize:  256,
		queued:        make(map[pendingUpdate]bool),
		ctx:           context.Background(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.logger = rt.logger.With("component", "weft.runtime")
	rt.dispatchCh = make(chan func(), rt.dispatchSize)
	return rt
}

// Loop returns the loop the runtime schedules onto.
func (rt *Runtime) Loop() *Loop { return rt.loop }

// Tick runs pending microtasks and one paint frame.
func (rt *Runtime) Tick() error { return rt.loop.Tick() }

// Settle runs the loop until idle or until maxFrames frames have painted.
func (rt *Runtime) Settle(maxFrames int) error { return rt.loop.Settle(maxFrames) }

// Active reports whether any root is mounted.
func (rt *Runtime) Active() bool { return rt.roots != nil }

// Mounted reports whether container holds a root.
func (rt *Runtime) Mounted(container *dom.Node) bool {
	_, ok := rt.roots[container]
	return ok
}

// Tree returns the committed render tree of container, or nil.
func (rt *Runtime) Tree(container *dom.Node) *vdom.Tree {
	if r, ok := rt.roots[container]; ok {
		return r.tree
	}
	return nil
}

// RootID returns the identifier assigned to container's root, or "".
func (rt *Runtime) RootID(container *dom.Node) string {
	if r, ok := rt.roots[container]; ok {
		return r.id
	}
	return ""
}

func (rt *Runtime) init() {
	if rt.roots == nil {
		rt.roots = make(map[*dom.Node]*root)
		rt.logger.Debug("runtime started")
	}
}

func (rt *Runtime) teardown() {
	rt.roots = nil
	rt.logger.Debug("runtime stopped")
}

// Render builds node and mounts it into container, then schedules the
// first round of effects.
//
// Render fails without touching container when container is nil, already
// holds a root (unless AsPortal is given), or has children. Errors raised by
// components abort the mount.
func (rt *Runtime) Render(container *dom.Node, node any, opts ...RenderOption) error {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if container == nil {
		return ErrNilContainer
	}
	prev, exists := rt.roots[container]
	if exists && !cfg.portal {
		return ErrAlreadyMounted.WithDetail(container.String())
	}
	if container.HasChildNodes() {
		return ErrNonEmptyContainer.WithDetail(container.String())
	}

	_, span := rt.tracer.Start(rt.ctx, "weft.mount",
		trace.WithAttributes(
			attribute.String("weft.container", container.String()),
			attribute.Bool("weft.portal", cfg.portal),
		),
	)
	defer span.End()

	start := time.Now()
	tree, err := reconcile.Build(node, nil, nil)
	if err != nil {
		rt.observeBuild(PhaseMount, time.Since(start), err)
		endSpan(span, err)
		return err
	}

	rt.init()
	if exists {
		rt.logger.Debug("replacing root", "root", prev.id, "container", container.String())
		reconcile.Teardown(container, prev.tree)
	}
	r := &root{
		id:        uuid.NewString(),
		container: container,
		node:      node,
		tree:      tree,
	}
	rt.roots[container] = r
	rt.bind(r)
	stats := reconcile.Sync(container, nil, tree)

	d := time.Since(start)
	rt.observeBuild(PhaseMount, d, nil)
	span.SetAttributes(attribute.String("weft.root", r.id), attribute.Int("weft.ops", stats.Ops()))
	rt.commit(r, PhaseMount, stats, d)
	rt.logger.Debug("mounted", "root", r.id, "container", container.String(), "ops", stats.Ops())

	rt.scheduleEffects(r)
	endSpan(span, nil)
	return nil
}

// Unmount removes the root in container: every hook instance is disposed,
// the container is emptied and the registry entry dropped. It reports
// whether a root was mounted there.
func (rt *Runtime) Unmount(container *dom.Node) bool {
	r, ok := rt.roots[container]
	if !ok {
		return false
	}

	_, span := rt.tracer.Start(rt.ctx, "weft.unmount",
		trace.WithAttributes(attribute.String("weft.root", r.id)),
	)
	defer span.End()

	start := time.Now()
	stats := reconcile.Teardown(container, r.tree)
	delete(rt.roots, container)
	rt.commit(r, PhaseUnmount, stats, time.Since(start))
	rt.logger.Debug("unmounted", "root", r.id, "container", container.String(), "disposed", len(stats.Disposed))

	if len(rt.roots) == 0 {
		rt.teardown()
	}
	endSpan(span, nil)
	return true
}

// bind points every live instance of r at this runtime and flags it mounted.
func (rt *Runtime) bind(r *root) {
	container := r.container
	for _, inst := range r.tree.Instances() {
		if inst.Unmounted() {
			continue
		}
		if !inst.Bound() {
			inst.BindUpdate(func() { rt.scheduleUpdate(container, inst) })
			inst.SetLogger(rt.logger.With("root", r.id))
		}
		inst.MarkMounted()
	}
}

// scheduleUpdate records a request to rebuild container and queues a flush
// if none is pending.
func (rt *Runtime) scheduleUpdate(container *dom.Node, inst *hooks.Instance) {
	rt.requests++
	key := pendingUpdate{container: container, inst: inst}
	if !rt.queued[key] {
		rt.queued[key] = true
		rt.pending = append(rt.pending, key)
	}
	if !rt.flushQueued {
		rt.flushQueued = true
		rt.loop.QueueMicrotask(rt.flush)
	}
}

// flush rebuilds each container with pending updates exactly once.
func (rt *Runtime) flush() error {
	rt.flushQueued = false
	updates, requests := rt.pending, rt.requests
	rt.pending, rt.requests = nil, 0
	clear(rt.queued)

	var order []*dom.Node
	seen := make(map[*dom.Node]bool, len(updates))
	for _, u := range updates {
		if !seen[u.container] {
			seen[u.container] = true
			order = append(order, u.container)
		}
	}

	ctx, span := rt.tracer.Start(rt.ctx, "weft.flush",
		trace.WithAttributes(
			attribute.Int("weft.requests", requests),
			attribute.Int("weft.containers", len(order)),
		),
	)
	defer span.End()

	var errs []error
	rebuilds := 0
	for _, c := range order {
		r, ok := rt.roots[c]
		if !ok {
			rt.logger.Debug("skipping update for unmounted container", "container", c.String())
			continue
		}
		rebuilds++
		if err := rt.update(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if rt.metrics != nil {
		rt.metrics.Flush(requests, rebuilds)
	}

	err := errors.Join(errs...)
	endSpan(span, err)
	return err
}

// update rebuilds r from its declared root and commits the difference.
func (rt *Runtime) update(ctx context.Context, r *root) error {
	_, span := rt.tracer.Start(ctx, "weft.update",
		trace.WithAttributes(attribute.String("weft.root", r.id)),
	)
	defer span.End()

	start := time.Now()
	tree, err := reconcile.Build(r.node, r.tree, nil)
	if err != nil {
		rt.observeBuild(PhaseUpdate, time.Since(start), err)
		rt.logger.Error("update failed", "root", r.id, "error", err)
		endSpan(span, err)
		return err
	}

	old := r.tree
	r.tree = tree
	rt.bind(r)
	stats := reconcile.Sync(r.container, old, tree)

	d := time.Since(start)
	rt.observeBuild(PhaseUpdate, d, nil)
	span.SetAttributes(attribute.Int("weft.ops", stats.Ops()))
	rt.commit(r, PhaseUpdate, stats, d)
	rt.logger.Debug("updated", "root", r.id, "ops", stats.Ops(), "disposed", len(stats.Disposed))

	rt.scheduleEffects(r)
	endSpan(span, nil)
	return nil
}

// scheduleEffects defers the due effects of r's instances, children before
// parents.
func (rt *Runtime) scheduleEffects(r *root) {
	for _, inst := range postOrder(r.tree) {
		if !inst.Mounted() || inst.Unmounted() || !inst.HasPendingEffects() {
			continue
		}
		task := rt.effectTask(r.id, inst)
		if rt.paint {
			rt.loop.RequestPaint(task)
		} else {
			rt.loop.QueueMicrotask(task)
		}
	}
}

func (rt *Runtime) effectTask(rootID string, inst *hooks.Instance) Task {
	return func() error {
		if !inst.HasPendingEffects() {
			return nil
		}
		_, span := rt.tracer.Start(rt.ctx, "weft.effects",
			trace.WithAttributes(
				attribute.String("weft.root", rootID),
				attribute.String("weft.component", inst.Name()),
			),
		)
		defer span.End()

		err := inst.RunEffects()
		if rt.metrics != nil {
			rt.metrics.Effects(err)
		}
		endSpan(span, err)
		return err
	}
}

func (rt *Runtime) observeBuild(phase Phase, d time.Duration, err error) {
	if rt.metrics != nil {
		rt.metrics.Build(string(phase), d, err)
	}
}

func (rt *Runtime) commit(r *root, phase Phase, stats reconcile.Stats, d time.Duration) {
	if rt.metrics != nil {
		rt.metrics.Commit(stats)
		rt.metrics.Roots(len(rt.roots))
	}
	info := CommitInfo{
		RootID:    r.id,
		Container: r.container,
		Phase:     phase,
		Stats:     stats,
		Duration:  d,
	}
	if phase != PhaseUnmount {
		info.Tree = r.tree
	}
	for _, o := range rt.observers {
		o(info)
	}
}

// postOrder lists the hook instances of t with descendants first.
func postOrder(t *vdom.Tree) []*hooks.Instance {
	var out []*hooks.Instance
	var walk func(*vdom.Tree)
	walk = func(n *vdom.Tree) {
		if n == nil || n.IsLeaf() {
			return
		}
		for _, c := range n.Live.Children {
			walk(c)
		}
		if n.Live.Hooks != nil {
			out = append(out, n.Live.Hooks)
		}
	}
	walk(t)
	return out
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
