package inspector

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType names a message pushed to inspector clients.
type MessageType string

const (
	// MessageSync is sent once on connect with every root the client
	// watches.
	MessageSync    MessageType = "sync"
	MessageCommit  MessageType = "commit"
	MessageUnmount MessageType = "unmount"
)

// Message is sent to clients via WebSocket.
type Message struct {
	Type   MessageType `json:"type"`
	RootID string      `json:"rootId,omitempty"`
	Root   *Snapshot   `json:"root,omitempty"`
	Roots  []*Snapshot `json:"roots,omitempty"`
}

const (
	sendBuffer     = 32
	writeTimeout   = 5 * time.Second
	heartbeat      = 30 * time.Second
	maxClientFrame = 512
)

// watcher is one connected client. Only its write loop writes to conn.
type watcher struct {
	conn *websocket.Conn
	root string
	send chan []byte
}

func (w *watcher) wants(msg Message) bool {
	return w.root == "" || msg.RootID == w.root
}

// Hub fans commits out to watchers. Broadcast never blocks: a watcher
// whose queue is full is disconnected and can reconnect for a fresh sync.
type Hub struct {
	mu       sync.Mutex
	watchers map[*watcher]struct{}
	closed   bool
	upgrader websocket.Upgrader
	syncFor  func(root string) Message
}

func newHub(syncFor func(root string) Message) *Hub {
	return &Hub{
		watchers: make(map[*watcher]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		syncFor: syncFor,
	}
}

// HandleWebSocket upgrades the request, queues the sync message and streams
// commits until the client disconnects. The optional ?root= query limits
// the stream to one root.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	c := &watcher{
		conn: conn,
		root: req.URL.Query().Get("root"),
		send: make(chan []byte, sendBuffer),
	}

	// Registering and queueing the sync under one lock keeps it ahead of
	// any commit broadcast to this watcher.
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.watchers[c] = struct{}{}
	if data, err := json.Marshal(h.syncFor(c.root)); err == nil {
		c.send <- data
	}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
	h.remove(c)
}

// readLoop discards client frames; it returns when the connection fails.
func (h *Hub) readLoop(c *watcher) {
	c.conn.SetReadLimit(maxClientFrame)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *watcher) {
	ticker := time.NewTicker(heartbeat)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drop unregisters c and closes its queue. The caller holds h.mu.
func (h *Hub) drop(c *watcher) {
	if _, ok := h.watchers[c]; ok {
		delete(h.watchers, c)
		close(c.send)
	}
}

func (h *Hub) remove(c *watcher) {
	h.mu.Lock()
	h.drop(c)
	h.mu.Unlock()
}

// Broadcast queues msg for every watcher interested in its root.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.watchers {
		if !c.wants(msg) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.drop(c)
		}
	}
}

// ClientCount returns the number of connected watchers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

// Close disconnects every watcher and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.watchers {
		h.drop(c)
	}
}
