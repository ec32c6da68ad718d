// Package text is the display unit used throughout withhover: a paragraph
// whose background reflects a hover flag, plus its hover-wrapped composite.
package text

import (
	"github.com/vango-dev/withhover/pkg/hover"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// Backgrounds for the two visual treatments.
const (
	HighlightBackground = "blue"
	DefaultBackground   = "white"
)

// Props are the full inputs of Component.
type Props struct {
	Text      string
	IsHovered bool
}

// Hovered implements hover.HasHoverInput.
func (p Props) Hovered() bool { return p.IsHovered }

// Inputs are the inputs a caller supplies to WithHover: Props without the
// injected hover flag.
type Inputs struct {
	Text string
}

// WithHover implements hover.Merger.
func (in Inputs) WithHover(h hover.Injected) Props {
	return Props{
		Text:      in.Text,
		IsHovered: h.IsHovered,
	}
}

// Component renders the text in a paragraph, highlighted when hovered.
func Component(p Props) *vdom.VNode {
	bg := DefaultBackground
	if p.IsHovered {
		bg = HighlightBackground
	}
	return vdom.P(
		vdom.Style(map[string]string{"background-color": bg}),
		vdom.Text(p.Text),
	)
}

// WithHover is Component wrapped with hover tracking.
//
//	c := text.WithHover.New(text.Inputs{Text: "hello"})
var WithHover = hover.With[Inputs](Component)

var _ hover.Instance = (*hover.Composite[Inputs, Props])(nil)
