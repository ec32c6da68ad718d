package text

import (
	"github.com/vango-dev/withhover/pkg/hover"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// Stylesheet is the CSS pages embed around a List.
const Stylesheet = `body{font-family:sans-serif;margin:2rem}` +
	`.withhover p{padding:.5rem;margin:.25rem 0;transition:background-color .1s}`

// List is a heading followed by one hover-wrapped paragraph per text. It
// renders as a single <main> element.
type List struct {
	Title string
	Items []*hover.Composite[Inputs, Props]
}

// NewList creates a List. opts are passed to every composite.
func NewList(title string, texts []string, opts ...hover.Option) *List {
	l := &List{Title: title, Items: make([]*hover.Composite[Inputs, Props], 0, len(texts))}
	for _, t := range texts {
		l.Items = append(l.Items, WithHover.New(Inputs{Text: t}, opts...))
	}
	return l
}

// Render implements vdom.Component.
func (l *List) Render() *vdom.VNode {
	children := make([]any, 0, len(l.Items)+2)
	children = append(children, vdom.Class("withhover"))
	if l.Title != "" {
		children = append(children, vdom.H1(vdom.Text(l.Title)))
	}
	for _, c := range l.Items {
		children = append(children, c)
	}
	return vdom.Main(children...)
}

// SetHovered delivers enter or leave to every item.
func (l *List) SetHovered(hovered bool) {
	for _, c := range l.Items {
		if hovered {
			c.OnEnterSignal()
		} else {
			c.OnLeaveSignal()
		}
	}
}

// Dispose disposes every item.
func (l *List) Dispose() {
	for _, c := range l.Items {
		c.Dispose()
	}
}
