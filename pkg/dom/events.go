package dom

// Listener handles a dispatched event.
type Listener func(ev *Event)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Event is dispatched to listeners and bubbles from Target to the root.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node

	// Detail carries event-specific data (e.g. the value of an input).
	Detail any

	stopped          bool
	defaultPrevented bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// AddEventListener registers fn for events of the given type.
func (n *Node) AddEventListener(event string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]listenerEntry)
	}
	n.doc.nextListenerID++
	id := n.doc.nextListenerID
	n.listeners[event] = append(n.listeners[event], listenerEntry{id: id, fn: fn})
	return id
}

// RemoveEventListener removes a listener previously returned by
// AddEventListener. It reports whether a listener was removed.
func (n *Node) RemoveEventListener(event string, id ListenerID) bool {
	entries := n.listeners[event]
	for i, e := range entries {
		if e.id == id {
			n.listeners[event] = append(entries[:i], entries[i+1:]...)
			if len(n.listeners[event]) == 0 {
				delete(n.listeners, event)
			}
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners for an event type.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// DispatchEvent delivers ev to n and then to each ancestor until a listener
// stops propagation. It reports whether the default action should proceed.
func (n *Node) DispatchEvent(ev *Event) bool {
	ev.Target = n
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		entries := cur.listeners[ev.Type]
		if len(entries) == 0 {
			continue
		}
		ev.CurrentTarget = cur
		// Listeners added or removed during dispatch take effect next time.
		snapshot := append([]listenerEntry(nil), entries...)
		for _, e := range snapshot {
			e.fn(ev)
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

// Click dispatches a click event on n.
func (n *Node) Click() bool {
	return n.DispatchEvent(NewEvent("click"))
}

type boundListener struct {
	event string
	id    ListenerID
}

// BindListener registers fn for event under key, first removing any
// listener previously bound under the same key.
func (n *Node) BindListener(key, event string, fn Listener) ListenerID {
	n.UnbindListener(key)
	id := n.AddEventListener(event, fn)
	if id == 0 {
		return 0
	}
	if n.bound == nil {
		n.bound = make(map[string]boundListener)
	}
	n.bound[key] = boundListener{event: event, id: id}
	return id
}

// UnbindListener removes the listener bound under key. It reports whether
// one was bound.
func (n *Node) UnbindListener(key string) bool {
	b, ok := n.bound[key]
	if !ok {
		return false
	}
	delete(n.bound, key)
	return n.RemoveEventListener(b.event, b.id)
}
