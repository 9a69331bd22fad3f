package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/scheduler"
)

// DefaultSettleFrames is the frame budget Settle uses.
const DefaultSettleFrames = 50

// Harness mounts a tree into a fresh document for a single test.
type Harness struct {
	t testing.TB

	Doc       *dom.Document
	Container *dom.Node
	Runtime   *scheduler.Runtime

	commits []scheduler.CommitInfo
}

// New creates a harness with an empty container (div#root) under body.
// The root, if any, is unmounted when the test finishes.
func New(t testing.TB, opts ...scheduler.Option) *Harness {
	t.Helper()
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	container.SetAttribute("id", "root")
	doc.Body().AppendChild(container)

	h := &Harness{t: t, Doc: doc, Container: container}
	opts = append(opts, scheduler.WithObserver(func(info scheduler.CommitInfo) {
		h.commits = append(h.commits, info)
	}))
	h.Runtime = scheduler.New(opts...)
	t.Cleanup(func() { h.Runtime.Unmount(container) })
	return h
}

// Mount creates a harness and renders node into it.
//
// Example:
//
//	h := vtest.Mount(t, vdom.H(App), scheduler.WithoutPaint())
func Mount(t testing.TB, node any, opts ...scheduler.Option) *Harness {
	t.Helper()
	h := New(t, opts...)
	h.Render(node)
	return h
}

// Render mounts node into the container, failing the test on error.
func (h *Harness) Render(node any) {
	h.t.Helper()
	if err := h.Runtime.Render(h.Container, node); err != nil {
		h.t.Fatalf("Render: %v", err)
	}
}

// Unmount removes the root.
func (h *Harness) Unmount() {
	h.Runtime.Unmount(h.Container)
}

// Flush runs queued microtasks, applying pending state updates.
func (h *Harness) Flush() {
	h.t.Helper()
	if err := h.Runtime.Loop().RunMicrotasks(); err != nil {
		h.t.Fatalf("Flush: %v", err)
	}
}

// Tick runs queued microtasks and one paint frame.
func (h *Harness) Tick() {
	h.t.Helper()
	if err := h.Runtime.Tick(); err != nil {
		h.t.Fatalf("Tick: %v", err)
	}
}

// Settle ticks until the loop is idle.
func (h *Harness) Settle() {
	h.t.Helper()
	if err := h.Runtime.Settle(DefaultSettleFrames); err != nil {
		h.t.Fatalf("Settle: %v", err)
	}
}

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string {
	return h.Container.InnerHTML()
}

// Query returns the first element matching sel, searching the whole
// document so portal output is reachable. It fails the test if none match.
func (h *Harness) Query(sel string) *dom.Node {
	h.t.Helper()
	n := h.Doc.QuerySelector(sel)
	if n == nil {
		h.t.Fatalf("no element matches %q in:\n%s", sel, truncate(h.Doc.Body().InnerHTML(), 500))
	}
	return n
}

// Click dispatches a click on the element matching sel.
func (h *Harness) Click(sel string) {
	h.t.Helper()
	h.Query(sel).Click()
}

// Input sets the value attribute of the element matching sel and
// dispatches an input event carrying value.
func (h *Harness) Input(sel, value string) {
	h.t.Helper()
	el := h.Query(sel)
	el.SetAttribute("value", value)
	ev := dom.NewEvent("input")
	ev.Detail = value
	el.DispatchEvent(ev)
}

// Commits returns the number of commits observed for phase.
func (h *Harness) Commits(phase scheduler.Phase) int {
	n := 0
	for _, c := range h.commits {
		if c.Phase == phase {
			n++
		}
	}
	return n
}

// LastCommit returns the most recent commit, or the zero value.
func (h *Harness) LastCommit() scheduler.CommitInfo {
	if len(h.commits) == 0 {
		return scheduler.CommitInfo{}
	}
	return h.commits[len(h.commits)-1]
}

// ExpectHTML asserts that the container's HTML equals want.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("html = %q\n          want %q", got, want)
	}
}

// ExpectText asserts the text content of the element matching sel.
//
// Example:
//
//	h.ExpectText("#total", "42")
func (h *Harness) ExpectText(sel, want string) {
	h.t.Helper()
	if got := h.Query(sel).TextContent(); got != want {
		h.t.Errorf("text of %s = %q, want %q", sel, got, want)
	}
}

// ExpectContains asserts that the output contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the output does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the output contains a tag element.
func (h *Harness) ExpectElement(tag string) {
	h.t.Helper()
	if h.Container.QuerySelector(tag) == nil {
		h.t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(h.HTML(), 500))
	}
}

// ExpectAttribute asserts that the output contains attr="value".
func (h *Harness) ExpectAttribute(attr, value string) {
	h.t.Helper()
	html := h.HTML()
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		h.t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// RenderToString mounts node into a throwaway document, settles the loop
// and returns the resulting HTML.
//
// Example:
//
//	html, err := vtest.RenderToString(vdom.H(Card, vdom.Props{"title": "Hi"}))
func RenderToString(node any, opts ...scheduler.Option) (string, error) {
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	doc.Body().AppendChild(container)

	rt := scheduler.New(opts...)
	if err := rt.Render(container, node); err != nil {
		return "", err
	}
	defer rt.Unmount(container)
	if err := rt.Settle(DefaultSettleFrames); err != nil {
		return "", err
	}
	return container.InnerHTML(), nil
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
