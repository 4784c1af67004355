package dom

import "sync"

// Node is a constructed piece of UI owned by the backend.
type Node interface{}

// Event is the value delivered to an event handler.
type Event interface {
	Type() EventType
}

// Handler receives events installed with Builder.Event.
type Handler = func(Event)

// Builder accumulates the description of a single native element.
// Every method returns the builder so calls can be chained.
type Builder interface {
	Node

	// Attribute sets a literal attribute. Values are stringified by the backend.
	Attribute(name string, value any) Builder
	// Property sets a live DOM property.
	Property(name string, value any) Builder
	// Event installs a handler for the given event type.
	Event(typ EventType, handler Handler) Builder
	// Children attaches child nodes in order.
	Children(children ...Node) Builder
	// Text sets static text content.
	Text(text string) Builder
}

// Backend turns builder calls into real DOM nodes.
type Backend interface {
	Element(tag string) Builder
	Text(text string) Node
	TextReactive(text Signal[string]) Node
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// Use registers the backend used by Element, Text and TextReactive.
// It is typically called once during application start-up.
func Use(b Backend) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backend = b
}

func current() Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	if backend == nil {
		panic("dom: no backend registered, call dom.Use first")
	}
	return backend
}

// Element begins building a native element with the given tag.
func Element(tag string) Builder {
	return current().Element(tag)
}

// Text creates a static text node.
func Text(text string) Node {
	return current().Text(text)
}

// TextReactive creates a text node whose content follows the given stream.
// The node re-renders every time the stream yields a new value.
func TextReactive(text Signal[string]) Node {
	return current().TextReactive(text)
}
