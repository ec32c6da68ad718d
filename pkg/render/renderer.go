package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/withhover/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// Hydrate emits data-hid and data-on-* markers so the live client can
	// bind events. Static snapshots leave it off.
	Hydrate bool
}

// Renderer turns VNode trees into HTML. A Renderer is not safe for
// concurrent use; Reset it between renders of the same tree so hydration
// IDs line up with the previous render.
type Renderer struct {
	config    RendererConfig
	hids      *vdom.HIDGenerator
	handlers  map[string]map[string]any
	fragments []Fragment
}

// Fragment is the output of one component recorded during a hydrating
// render. HID is the hydration ID of the component's root element, so the
// fragment can replace that element on the client.
type Fragment struct {
	Component vdom.Component
	HID       string
	HTML      string
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		hids:     vdom.NewHIDGenerator(),
		handlers: make(map[string]map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Handlers returns the handlers collected during rendering, keyed by HID
// and then by event name ("mouseenter", "mouseleave", ...).
func (r *Renderer) Handlers() map[string]map[string]any {
	return r.handlers
}

// Fragments returns the component fragments of the last hydrating render in
// document order. Outer components come before the components they contain.
func (r *Renderer) Fragments() []Fragment {
	return r.fragments
}

// Fragment returns the recorded fragment of c.
func (r *Renderer) Fragment(c vdom.Component) (Fragment, bool) {
	for _, f := range r.fragments {
		if f.Component == c {
			return f, true
		}
	}
	return Fragment{}, false
}

// Reset clears the HID counter, handler registry and fragments.
func (r *Renderer) Reset() {
	r.hids.Reset()
	r.handlers = make(map[string]map[string]any)
	r.fragments = nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		if !r.config.Hydrate {
			return r.renderNode(w, node.Comp.Render(), depth)
		}
		return r.renderComponent(w, node.Comp, depth)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderComponent renders c and records its output as a fragment when the
// output is a single element.
func (r *Renderer) renderComponent(w io.Writer, c vdom.Component, depth int) error {
	out := c.Render()
	if out == nil || out.Kind != vdom.KindElement {
		return r.renderNode(w, out, depth)
	}

	// Reserve the slot so outer components precede inner ones.
	i := len(r.fragments)
	r.fragments = append(r.fragments, Fragment{Component: c})

	var buf bytes.Buffer
	if err := r.renderNode(&buf, out, depth); err != nil {
		return err
	}
	r.fragments[i].HID = out.HID
	r.fragments[i].HTML = buf.String()
	_, err := w.Write(buf.Bytes())
	return err
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if r.config.Hydrate {
		node.HID = r.hids.Next()
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, node.HID); err != nil {
			return err
		}
		if err := r.renderEventMarkers(w, node); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && hasElementChildren(node)
	if block {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if block {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders non-event props in key order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if strings.HasPrefix(key, "_") || vdom.IsEventKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

// renderEventMarkers writes data-on-<event> markers and records handlers
// under the element's HID.
func (r *Renderer) renderEventMarkers(w io.Writer, node *vdom.VNode) error {
	handlers := node.Handlers()
	if len(handlers) == 0 {
		return nil
	}

	events := make([]string, 0, len(handlers))
	for name := range handlers {
		events = append(events, name)
	}
	sort.Strings(events)

	for _, name := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, name); err != nil {
			return err
		}
	}
	r.handlers[node.HID] = handlers
	return nil
}

func hasElementChildren(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

// booleanAttrs are rendered by presence only.
var booleanAttrs = map[string]bool{
	"hidden":   true,
	"disabled": true,
	"checked":  true,
	"readonly": true,
	"required": true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
