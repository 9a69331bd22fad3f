// Package inspector serves a devtools view of a running weft runtime.
//
// An Inspector is registered as a commit observer. Every commit records a
// snapshot of the root (its HTML, described tree and patch stats) and
// pushes it to connected WebSocket clients. The HTTP surface:
//
//	GET /roots            list of root snapshots
//	GET /roots/{id}       one snapshot as JSON
//	GET /roots/{id}/html  the root's committed HTML
//	GET /ws               sync of current roots, then live commits;
//	                      ?root={id} limits the stream to one root
//	GET /metrics          Prometheus metrics, when a gatherer is configured
package inspector

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Stats mirrors reconcile.Stats without the disposed instances.
type Stats struct {
	Created     int `json:"created"`
	Removed     int `json:"removed"`
	Replaced    int `json:"replaced"`
	TextUpdates int `json:"textUpdates"`
	PropOps     int `json:"propOps"`
	Disposed    int `json:"disposed"`
}

// Snapshot is the inspector's record of one root after its latest commit.
type Snapshot struct {
	ID         string         `json:"id"`
	Container  string         `json:"container"`
	Phase      string         `json:"phase"`
	Commits    int            `json:"commits"`
	HTML       string         `json:"html"`
	Tree       *vdom.TreeInfo `json:"tree,omitempty"`
	Stats      Stats          `json:"stats"`
	DurationMS float64        `json:"durationMs"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Inspector records committed roots and streams them to clients.
type Inspector struct {
	hub    *Hub
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	roots map[string]*Snapshot
}

// New creates an inspector.
func New(logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	in := &Inspector{
		logger: logger.With("component", "weft.inspector"),
		now:    time.Now,
		roots:  make(map[string]*Snapshot),
	}
	in.hub = newHub(in.syncMessage)
	return in
}

// syncMessage lists the current snapshots, limited to root when set.
func (in *Inspector) syncMessage(root string) Message {
	msg := Message{Type: MessageSync, RootID: root}
	if root == "" {
		msg.Roots = in.Roots()
		return msg
	}
	if s, ok := in.Root(root); ok {
		msg.Roots = []*Snapshot{s}
	}
	return msg
}

// Hub returns the WebSocket hub.
func (in *Inspector) Hub() *Hub { return in.hub }

// Observer returns a scheduler option registering the inspector.
func (in *Inspector) Observer() scheduler.Option {
	return scheduler.WithObserver(in.Observe)
}

// Observe records a commit. It runs on the runtime goroutine, which owns
// the container it reads.
func (in *Inspector) Observe(info scheduler.CommitInfo) {
	if info.Phase == scheduler.PhaseUnmount {
		in.mu.Lock()
		delete(in.roots, info.RootID)
		in.mu.Unlock()
		in.hub.Broadcast(Message{Type: MessageUnmount, RootID: info.RootID})
		return
	}

	snap := &Snapshot{
		ID:        info.RootID,
		Container: info.Container.String(),
		Phase:     string(info.Phase),
		HTML:      info.Container.InnerHTML(),
		Stats: Stats{
			Created:     info.Stats.Created,
			Removed:     info.Stats.Removed,
			Replaced:    info.Stats.Replaced,
			TextUpdates: info.Stats.TextUpdates,
			PropOps:     info.Stats.PropOps,
			Disposed:    len(info.Stats.Disposed),
		},
		DurationMS: float64(info.Duration) / float64(time.Millisecond),
		UpdatedAt:  in.now(),
	}
	if info.Tree != nil {
		tree := vdom.Describe(info.Tree)
		snap.Tree = &tree
	}

	in.mu.Lock()
	if prev, ok := in.roots[info.RootID]; ok {
		snap.Commits = prev.Commits
	}
	snap.Commits++
	in.roots[info.RootID] = snap
	in.mu.Unlock()

	in.logger.Debug("commit", "root", info.RootID, "phase", info.Phase, "clients", in.hub.ClientCount())
	in.hub.Broadcast(Message{Type: MessageCommit, RootID: info.RootID, Root: snap})
}

// Roots returns the current snapshots ordered by id.
func (in *Inspector) Roots() []*Snapshot {
	in.mu.RLock()
	defer in.mu.RUnlock()
	out := make([]*Snapshot, 0, len(in.roots))
	for _, s := range in.roots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Root returns the snapshot for id.
func (in *Inspector) Root(id string) (*Snapshot, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	s, ok := in.roots[id]
	return s, ok
}

// Close disconnects every client.
func (in *Inspector) Close() {
	in.hub.Close()
}
