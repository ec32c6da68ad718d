// Package vdom provides the virtual DOM used by withhover components.
//
// VNode is the building block for elements, text, fragments and nested
// components. Props holds attributes and event handlers; Attr and
// EventHandler are used to build Props.
//
// Elements are created with variadic factory functions:
//
//	Div(Class("card"),
//	    P(Style(map[string]string{"background-color": "white"}), Text("hello")),
//	    OnMouseEnter(enter),
//	    OnMouseLeave(leave),
//	)
//
// Component nodes (Comp) are expanded by the renderer, which also assigns
// hydration IDs with HIDGenerator so the live client can address elements.
package vdom
