package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/withhover/pkg/vdom"
)

func TestRenderPageStatic(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{})

	err := r.RenderPage(&buf, PageData{
		Title:  "A <title>",
		Styles: []string{"p{margin:0}"},
		Body:   vdom.Main(vdom.P(vdom.Text("hello"))),
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>A &lt;title&gt;</title>",
		"<style>p{margin:0}</style>",
		"<main><p>hello</p></main>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script") {
		t.Error("static page should not include the client script")
	}
}

func TestRenderPageLive(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{Hydrate: true})

	err := r.RenderPage(&buf, PageData{
		Lang:      "fr",
		LivePath:  "/_withhover/live",
		SessionID: "s-1",
		Body:      vdom.Div(vdom.OnMouseEnter(func() {})),
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, `<html lang="fr">`) {
		t.Error("lang attribute missing")
	}
	if !strings.Contains(html, `<script data-live-path="/_withhover/live" data-session="s-1">`) {
		t.Errorf("client script tag missing:\n%s", html)
	}
	if !strings.Contains(html, "new WebSocket") {
		t.Error("client script body missing")
	}
}

func TestRenderPagePrerenderedBody(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{})

	err := r.RenderPage(&buf, PageData{
		BodyHTML: `<main data-hid="h1"></main>`,
		Body:     vdom.P(vdom.Text("ignored")),
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if html := buf.String(); !strings.Contains(html, "<body>\n<main data-hid=\"h1\"></main>") || strings.Contains(html, "ignored") {
		t.Errorf("BodyHTML should replace Body:\n%s", html)
	}
}

func TestEscape(t *testing.T) {
	if got := escapeHTML(`<a href="x">&'`); got != "&lt;a href=&quot;x&quot;&gt;&amp;&#39;" {
		t.Errorf("escapeHTML = %q", got)
	}
	if got := escapeAttr("a\tb\r"); got != "a&#9;b&#13;" {
		t.Errorf("escapeAttr = %q", got)
	}
}
