// Package vtest provides testing helpers for weft components.
//
// A Harness owns a fresh document, a container and a runtime, mounts a
// declared tree and drives the loop by hand, so tests read as a sequence of
// interactions and assertions.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, vdom.H(Counter))
//	    h.ExpectText("span", "Count: 0")
//
//	    h.Click("button")
//	    h.Tick()
//
//	    h.ExpectText("span", "Count: 1")
//	}
//
// # Driving the loop
//
// Setters never rebuild synchronously. Flush runs queued microtasks (the
// rebuild), Tick also paints one frame (effects), and Settle ticks until
// the loop is idle. Each fails the test on error.
//
// # Render Assertions
//
// Assert on the container's HTML:
//
//	h.ExpectContains("Welcome")
//	h.ExpectNotContains("Login")
//	h.ExpectElement("button")
//	h.ExpectAttribute("class", "btn-primary")
//
// For a one-off string, RenderToString mounts into a throwaway document,
// settles and returns the HTML.
package vtest
