package server

import (
	"github.com/vango-dev/withhover/pkg/hover"
	"github.com/vango-dev/withhover/pkg/session"
	"github.com/vango-dev/withhover/pkg/text"
	"github.com/vango-dev/withhover/pkg/vdom"
)

// TextPage mounts a text.List: a heading followed by one hover-highlighted
// paragraph per text.
func TextPage(title string, texts []string) session.Mount {
	return func(opts ...hover.Option) vdom.Component {
		return text.NewList(title, texts, opts...)
	}
}
