package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/withhover/pkg/render"
	"github.com/vango-dev/withhover/pkg/text"
	"github.com/vango-dev/withhover/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		content string
		hovered bool
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of one hover composite",
		Long: `Render a single hover-wrapped paragraph to stdout.

--hovered delivers a pointer enter before rendering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := text.WithHover.New(text.Inputs{Text: content})
			defer c.Dispose()
			if hovered {
				c.OnEnterSignal()
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
			html, err := r.RenderToString(vdom.Comp(c))
			if err != nil {
				return err
			}
			if pretty {
				_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&content, "text", "t", "hello", "Paragraph text")
	cmd.Flags().BoolVar(&hovered, "hovered", false, "Render the hovered state")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")

	return cmd
}
