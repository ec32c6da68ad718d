// Package render provides server-side rendering for withhover components.
//
// The renderer converts VNode trees into HTML, expanding component nodes,
// escaping text and attribute values, and (with Hydrate set) tagging every
// element with a data-hid so the live client can address it. Elements with
// event handlers also get data-on-<event> markers and their handlers are
// recorded in the renderer's registry:
//
//	r := render.NewRenderer(render.RendererConfig{Hydrate: true})
//	html, err := r.RenderToString(node)
//	handlers := r.Handlers() // map[hid]map[event]handler
//
// RenderPage wraps a body in a full document and, when LivePath is set,
// injects the live client script.
package render
