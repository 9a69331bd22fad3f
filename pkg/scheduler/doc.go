// Package scheduler mounts declared trees into dom containers and keeps
// them current as component state changes.
//
// A Runtime owns the registry of mounted roots. State setters do not
// rebuild synchronously: each request is added to a pending set and the
// first request since the last flush queues one microtask on the runtime's
// Loop. When the microtask runs, every affected container is rebuilt once
// from its declared root, however many setters fired. Effects are deferred
// further, to the next paint frame (or a microtask when painting is
// disabled), so they always observe the committed output.
//
// Nothing in a Runtime is safe for concurrent use. Code on other
// goroutines hands work to the runtime with Dispatch; Run drives the loop:
//
//	rt := scheduler.New()
//	go rt.Run(ctx)
//	rt.Dispatch(func() {
//	    if err := rt.Render(doc.Body(), app); err != nil {
//	        log.Print(err)
//	    }
//	})
//
// Tests drive the Loop by hand instead, with Tick or Settle.
package scheduler
