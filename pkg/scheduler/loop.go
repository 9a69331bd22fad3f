package scheduler

import (
	"errors"
)

// Task is a unit of deferred work.
type Task func() error

// Loop is a cooperative task queue with two suspension points: microtasks,
// which drain completely whenever the loop runs, and paint callbacks, which
// run once per frame.
//
// A Loop is not safe for concurrent use.
type Loop struct {
	micro  []Task
	paint  []Task
	frames int
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// QueueMicrotask appends t to the microtask queue.
func (l *Loop) QueueMicrotask(t Task) {
	l.micro = append(l.micro, t)
}

// RequestPaint schedules t for the next paint frame.
func (l *Loop) RequestPaint(t Task) {
	l.paint = append(l.paint, t)
}

// RunMicrotasks drains the microtask queue, including tasks queued while it
// runs. Every task runs; the errors they return are joined.
func (l *Loop) RunMicrotasks() error {
	var errs []error
	for len(l.micro) > 0 {
		t := l.micro[0]
		l.micro[0] = nil
		l.micro = l.micro[1:]
		if err := t(); err != nil {
			errs = append(errs, err)
		}
	}
	l.micro = nil
	return errors.Join(errs...)
}

// Paint runs one frame: the paint callbacks queued before the frame began,
// each followed by a microtask checkpoint. Callbacks requested during the
// frame wait for the next one.
func (l *Loop) Paint() error {
	l.frames++
	batch := l.paint
	l.paint = nil

	var errs []error
	for _, t := range batch {
		if err := t(); err != nil {
			errs = append(errs, err)
		}
		if err := l.RunMicrotasks(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tick drains the microtasks and then paints one frame.
func (l *Loop) Tick() error {
	err := l.RunMicrotasks()
	return errors.Join(err, l.Paint())
}

// Settle ticks until no work is queued. It returns ErrLoopNotSettled if work
// remains after maxFrames frames, together with any task errors.
func (l *Loop) Settle(maxFrames int) error {
	var errs []error
	for i := 0; i < maxFrames; i++ {
		if err := l.Tick(); err != nil {
			errs = append(errs, err)
		}
		if l.Idle() {
			return errors.Join(errs...)
		}
	}
	if l.Idle() {
		return errors.Join(errs...)
	}
	errs = append(errs, ErrLoopNotSettled.WithDetailf("%d microtasks and %d paint callbacks pending after %d frames", len(l.micro), len(l.paint), maxFrames))
	return errors.Join(errs...)
}

// Idle reports whether both queues are empty.
func (l *Loop) Idle() bool {
	return len(l.micro) == 0 && len(l.paint) == 0
}

// Pending returns the number of queued microtasks and paint callbacks.
func (l *Loop) Pending() (micro, paint int) {
	return len(l.micro), len(l.paint)
}

// Frames returns the number of frames painted so far.
func (l *Loop) Frames() int {
	return l.frames
}
