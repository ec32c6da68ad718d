package vdom

import "strings"

// Event names understood by the live client.
const (
	EventClick      = "click"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
)

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// IsEventKey reports whether a prop key names an event handler.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event(EventClick, handler) }

// OnMouseEnter handles mouseenter events. The event does not bubble, so the
// handler fires once when the pointer crosses into the element's box.
func OnMouseEnter(handler any) EventHandler { return event(EventMouseEnter, handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event(EventMouseLeave, handler) }
