package dom

import "sync"

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// Event represents a DOM event. Event types are case-sensitive:
// "click", "Click", and "CLICK" are three distinct event types.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
	Phase         EventPhase
	Bubbles       bool
	Cancelable    bool
	Detail        any

	defaultPrevented bool
	stopPropagation  bool
	stopImmediate    bool
}

// NewEvent creates an event with the given type.
func NewEvent(eventType string, bubbles, cancelable bool) *Event {
	return &Event{Type: eventType, Bubbles: bubbles, Cancelable: cancelable}
}

// NewCustomEvent creates a bubbling custom event carrying a detail payload.
func NewCustomEvent(eventType string, detail any) *Event {
	return &Event{Type: eventType, Bubbles: true, Cancelable: true, Detail: detail}
}

// PreventDefault marks the event's default action as cancelled.
// It has no effect on non-cancelable events.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further targets.
func (e *Event) StopPropagation() {
	e.stopPropagation = true
}

// StopImmediatePropagation prevents any further listener from running,
// including remaining listeners on the current target.
func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// EventListener is a callback invoked when a matching event is dispatched.
type EventListener func(*Event)

// ListenerOptions mirror the addEventListener options dictionary.
type ListenerOptions struct {
	Capture bool
	Once    bool
}

// ListenerHandle identifies a registered listener for later removal.
// Go function values are not comparable, so removal is handle-based.
type ListenerHandle int

// eventListener is a registered listener on one target.
type eventListener struct {
	id       ListenerHandle
	callback EventListener
	options  ListenerOptions
}

// eventTarget manages event listeners for a single node.
type eventTarget struct {
	listeners map[string][]eventListener
	nextID    ListenerHandle
	mu        sync.RWMutex
}

func newEventTarget() *eventTarget {
	return &eventTarget{listeners: make(map[string][]eventListener)}
}

func (n *Node) target() *eventTarget {
	if n.events == nil {
		n.events = newEventTarget()
	}
	return n.events
}

// AddEventListener registers a listener for the given event type and
// returns a handle that can be passed to RemoveEventListener.
func (n *Node) AddEventListener(eventType string, callback EventListener, opts ...ListenerOptions) ListenerHandle {
	var o ListenerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	et := n.target()
	et.mu.Lock()
	defer et.mu.Unlock()
	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], eventListener{
		id:       et.nextID,
		callback: callback,
		options:  o,
	})
	return et.nextID
}

// RemoveEventListener unregisters the listener identified by handle.
func (n *Node) RemoveEventListener(eventType string, handle ListenerHandle) {
	if n.events == nil {
		return
	}
	et := n.events
	et.mu.Lock()
	defer et.mu.Unlock()
	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.id == handle {
			et.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// HasEventListeners returns true if there are any listeners for the event type.
func (n *Node) HasEventListeners(eventType string) bool {
	if n.events == nil {
		return false
	}
	n.events.mu.RLock()
	defer n.events.mu.RUnlock()
	return len(n.events.listeners[eventType]) > 0
}

// DispatchEvent dispatches an event at this node: capture phase down the
// ancestor path, at-target, then bubbling back up if the event bubbles.
// The path crosses shadow boundaries by continuing at the shadow host.
// Returns false if a listener called PreventDefault on a cancelable event.
func (n *Node) DispatchEvent(event *Event) bool {
	event.Target = n
	event.defaultPrevented = false
	event.stopPropagation = false
	event.stopImmediate = false

	path := eventPath(n)

	// Capture: root towards target, excluding the target itself.
	event.Phase = EventPhaseCapturing
	for i := len(path) - 1; i >= 1 && !event.stopPropagation; i-- {
		path[i].invokeListeners(event, EventPhaseCapturing)
	}

	if !event.stopPropagation {
		event.Phase = EventPhaseAtTarget
		n.invokeListeners(event, EventPhaseAtTarget)
	}

	if event.Bubbles {
		event.Phase = EventPhaseBubbling
		for i := 1; i < len(path) && !event.stopPropagation; i++ {
			path[i].invokeListeners(event, EventPhaseBubbling)
		}
	}

	event.Phase = EventPhaseNone
	event.CurrentTarget = nil
	return !event.defaultPrevented
}

// eventPath builds the propagation path from target to root, crossing
// from a shadow root to its host.
func eventPath(n *Node) []*Node {
	var path []*Node
	for node := n; node != nil; {
		path = append(path, node)
		if node.parentNode != nil {
			node = node.parentNode
			continue
		}
		if node.shadowRoot != nil && node.shadowRoot.Host() != nil {
			node = node.shadowRoot.Host().AsNode()
			continue
		}
		break
	}
	return path
}

// invokeListeners runs the listeners registered on this node that apply
// to the given phase, honoring capture filtering and once removal.
func (n *Node) invokeListeners(event *Event, phase EventPhase) {
	if n.events == nil {
		return
	}
	et := n.events
	et.mu.RLock()
	listeners := make([]eventListener, len(et.listeners[event.Type]))
	copy(listeners, et.listeners[event.Type])
	et.mu.RUnlock()

	event.CurrentTarget = n

	var toRemove []ListenerHandle
	for _, l := range listeners {
		if phase == EventPhaseCapturing && !l.options.Capture {
			continue
		}
		if phase == EventPhaseBubbling && l.options.Capture {
			continue
		}

		l.callback(event)

		if l.options.Once {
			toRemove = append(toRemove, l.id)
		}
		if event.stopImmediate {
			break
		}
	}

	for _, id := range toRemove {
		n.RemoveEventListener(event.Type, id)
	}
}
