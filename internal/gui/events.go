// Lifecycle notifications for zoom sessions
package gui

// EventType names a zoom lifecycle notification.
type EventType string

const (
	// EventOpen fires when an open sequence starts.
	EventOpen EventType = "lightbox:open"
	// EventOpened fires when the enlarging transition completes.
	EventOpened EventType = "lightbox:opened"
	// EventClose fires when a close sequence starts.
	EventClose EventType = "lightbox:close"
	// EventClosed fires when the shrinking transition completes.
	EventClosed EventType = "lightbox:closed"
	// EventUpdate fires on every attached image when options change.
	EventUpdate EventType = "lightbox:update"
	// EventDetach fires on an image leaving the zoomable set.
	EventDetach EventType = "lightbox:detach"
)

// Event is delivered synchronously to listeners on the affected image.
type Event struct {
	Type  EventType
	Image *Image
	Zoom  *Zoom
}

// Listener receives lifecycle events.
type Listener func(Event)

// ListenerOption adjusts how a listener is registered.
type ListenerOption func(*listenerConfig)

type listenerConfig struct {
	once bool
}

// Once removes the listener from an image after its first delivery there.
func Once() ListenerOption {
	return func(c *listenerConfig) {
		c.once = true
	}
}

// Subscription identifies a registered listener so it can be removed.
type Subscription struct {
	id  uint64
	typ EventType
}

// listenerEntry is the per-image registration record.
type listenerEntry struct {
	id   uint64
	typ  EventType
	fn   Listener
	once bool
}

// listenerSeq issues registration ids. Ids must stay unique across
// controllers because images can be shared between them.
var listenerSeq uint64
