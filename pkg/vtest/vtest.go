// Package vtest provides assertions for testing withhover components.
package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/withhover/pkg/render"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// RenderToString renders a VNode without hydration markers and returns the
// HTML string, or "" if rendering fails.
//
// Example:
//
//	html := vtest.RenderToString(text.Component(text.Props{Text: "hi"}))
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// RenderHydrated renders a VNode the way a live session does and returns
// the HTML together with the handler registry keyed by HID and event.
func RenderHydrated(t *testing.T, node *vdom.VNode) (string, map[string]map[string]any) {
	t.Helper()
	r := render.NewRenderer(render.RendererConfig{Hydrate: true})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return html, r.Handlers()
}

// Fire invokes the handler registered for event on hid, as the live client
// would after a browser event.
//
// Example:
//
//	_, handlers := vtest.RenderHydrated(t, c.Render())
//	vtest.Fire(t, handlers, "h1", "mouseenter")
func Fire(t *testing.T, handlers map[string]map[string]any, hid, event string) {
	t.Helper()
	h, ok := handlers[hid][event]
	if !ok {
		t.Fatalf("no %s handler on %s", event, hid)
	}
	fn, ok := h.(func())
	if !ok {
		t.Fatalf("%s handler on %s has unsupported type %T", event, hid, h)
	}
	fn()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, c.Render(), "hello")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, c.Render(), "data-hover", "true")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectSameHTML asserts that two trees render to identical HTML.
func ExpectSameHTML(t *testing.T, got, want *vdom.VNode) {
	t.Helper()
	g, w := RenderToString(got), RenderToString(want)
	if g != w {
		t.Errorf("rendered output differs:\n got: %s\nwant: %s", truncate(g, 500), truncate(w, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
