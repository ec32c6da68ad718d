package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/withhover/pkg/vdom"
)

// PageData contains everything needed to render a complete HTML document.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// BodyHTML is pre-rendered body markup written verbatim instead of
	// Body. Live sessions render their tree themselves so the handler
	// table matches the HIDs on the page.
	BodyHTML string

	// Title is the page title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// Styles are inline CSS blocks placed in the head.
	Styles []string

	// LivePath is the websocket path the client connects to. When empty
	// the page is static and no client script is emitted.
	LivePath string

	// SessionID is sent in the handshake so the server can bind the socket
	// to the session that produced this page.
	SessionID string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if page.BodyHTML != "" {
		if _, err := io.WriteString(w, page.BodyHTML); err != nil {
			return err
		}
	} else if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if page.LivePath != "" {
		if err := renderClientScript(w, page); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n<meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderClientScript injects the live client with its connection settings.
func renderClientScript(w io.Writer, page PageData) error {
	if _, err := fmt.Fprintf(w,
		"<script data-live-path=\"%s\" data-session=\"%s\">",
		escapeAttr(page.LivePath), escapeAttr(page.SessionID)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, clientScript); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</script>")
	return err
}
