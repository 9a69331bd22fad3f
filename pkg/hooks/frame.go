package hooks

import (
	"runtime"
	"sync"
)

// frame is the hook context of the component currently rendering on a
// goroutine.
type frame struct {
	inst  *Instance
	scope Scope
	index int
}

// frames stores the active frame per goroutine so that separate runtimes can
// render on separate goroutines.
var frames sync.Map

// goroutineID parses the current goroutine's id from its stack header
// ("goroutine <id> [...]").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentFrame() *frame {
	if f, ok := frames.Load(goroutineID()); ok {
		return f.(*frame)
	}
	return nil
}

// pushFrame installs f and returns a func restoring the previous frame.
func pushFrame(f *frame) (restore func()) {
	gid := goroutineID()
	prev, had := frames.Load(gid)
	frames.Store(gid, f)
	return func() {
		if had {
			frames.Store(gid, prev)
		} else {
			frames.Delete(gid)
		}
	}
}

// active returns the current frame or panics with ErrInvalidHookContext.
func active(hook string) *frame {
	f := currentFrame()
	if f == nil || f.inst == nil {
		panic(ErrInvalidHookContext.WithDetailf("%s called outside a component render", hook))
	}
	return f
}

// Rendering reports whether a component render is in progress on the
// calling goroutine.
func Rendering() bool {
	return currentFrame() != nil
}
