package inspector

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/weft/internal/logging"
	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/metrics"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

type fixture struct {
	in        *Inspector
	rt        *scheduler.Runtime
	container *dom.Node
	srv       *httptest.Server
	set       hooks.Setter[string]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{in: New(logging.Discard())}
	reg := prometheus.NewRegistry()
	f.rt = scheduler.New(
		f.in.Observer(),
		scheduler.WithMetrics(metrics.New(metrics.WithRegistry(reg))),
		scheduler.WithLogger(logging.Discard()),
	)

	doc := dom.NewDocument()
	f.container = doc.CreateElement("main")
	f.container.SetAttribute("id", "app")
	doc.Body().AppendChild(f.container)

	Greeting := vdom.Define("Greeting", func(vdom.Props) any {
		name, set := hooks.UseState("world")
		f.set = set
		return vdom.H1("hello ", name)
	})
	if err := f.rt.Render(f.container, vdom.H(Greeting)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f.srv = httptest.NewServer(f.in.Handler(reg))
	t.Cleanup(func() {
		f.in.Close()
		f.srv.Close()
	})
	return f
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestRootsEndpoints(t *testing.T) {
	f := newFixture(t)
	id := f.rt.RootID(f.container)

	resp, body := f.get(t, "/roots")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var roots []Snapshot
	if err := json.Unmarshal([]byte(body), &roots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != id {
		t.Fatalf("roots = %+v", roots)
	}
	if roots[0].Container != "main#app" || roots[0].Phase != "mount" || roots[0].Commits != 1 {
		t.Errorf("snapshot = %+v", roots[0])
	}
	if roots[0].Tree == nil || roots[0].Tree.Name != "Greeting" {
		t.Errorf("tree = %+v", roots[0].Tree)
	}

	resp, body = f.get(t, "/roots/"+id+"/html")
	if resp.StatusCode != http.StatusOK || body != "<h1>hello world</h1>" {
		t.Errorf("html = %d %q", resp.StatusCode, body)
	}

	resp, _ = f.get(t, "/roots/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing root status = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	resp, body := f.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"weft_mounted_roots 1", "weft_builds_total"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func (f *fixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	before := f.in.Hub().ClientCount()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for f.in.Hub().ClientCount() == before {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketStream(t *testing.T) {
	f := newFixture(t)
	id := f.rt.RootID(f.container)
	conn := f.dial(t, "")

	msg := readMessage(t, conn)
	if msg.Type != MessageSync || len(msg.Roots) != 1 || msg.Roots[0].ID != id {
		t.Fatalf("sync = %+v", msg)
	}
	if msg.Roots[0].HTML != "<h1>hello world</h1>" || msg.Roots[0].Commits != 1 {
		t.Errorf("synced root = %+v", msg.Roots[0])
	}

	f.set.Set("weft")
	if err := f.rt.Tick(); err != nil {
		t.Fatal(err)
	}

	msg = readMessage(t, conn)
	if msg.Type != MessageCommit || msg.Root == nil {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Root.Phase != "update" || msg.Root.HTML != "<h1>hello weft</h1>" || msg.Root.Commits != 2 {
		t.Errorf("root = %+v", msg.Root)
	}
	if msg.Root.Stats.TextUpdates != 1 {
		t.Errorf("stats = %+v, want one text update", msg.Root.Stats)
	}

	f.rt.Unmount(f.container)
	msg = readMessage(t, conn)
	if msg.Type != MessageUnmount || msg.RootID != id {
		t.Errorf("message = %+v", msg)
	}
	if len(f.in.Roots()) != 0 {
		t.Error("unmounted root still listed")
	}
}

func TestWebSocketRootFilter(t *testing.T) {
	f := newFixture(t)
	id := f.rt.RootID(f.container)
	mine := f.dial(t, "?root="+id)
	other := f.dial(t, "?root=nope")

	if msg := readMessage(t, mine); msg.Type != MessageSync || msg.RootID != id || len(msg.Roots) != 1 {
		t.Fatalf("filtered sync = %+v", msg)
	}
	if msg := readMessage(t, other); msg.Type != MessageSync || len(msg.Roots) != 0 {
		t.Fatalf("unknown root sync = %+v", msg)
	}

	f.set.Set("filter")
	if err := f.rt.Tick(); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, mine); msg.Type != MessageCommit || msg.RootID != id {
		t.Errorf("message = %+v", msg)
	}

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var msg Message
	if err := other.ReadJSON(&msg); err == nil {
		t.Errorf("client watching another root received %+v", msg)
	}
}

func TestHubDropsSlowWatcher(t *testing.T) {
	h := newHub(func(string) Message { return Message{Type: MessageSync} })
	slow := &watcher{send: make(chan []byte, 1)}
	h.watchers[slow] = struct{}{}

	h.Broadcast(Message{Type: MessageCommit, RootID: "a"})
	h.Broadcast(Message{Type: MessageCommit, RootID: "a"})

	if n := h.ClientCount(); n != 0 {
		t.Fatalf("ClientCount = %d, want slow watcher dropped", n)
	}
	if _, ok := <-slow.send; !ok {
		t.Fatal("first message should stay queued")
	}
	if _, ok := <-slow.send; ok {
		t.Error("queue should be closed after the drop")
	}
}

func TestHubRefusesAfterClose(t *testing.T) {
	f := newFixture(t)
	f.in.Close()

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("closed hub should hang up")
	}
	if n := f.in.Hub().ClientCount(); n != 0 {
		t.Errorf("ClientCount = %d", n)
	}
}
