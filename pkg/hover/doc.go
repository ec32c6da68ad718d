// Package hover injects pointer-hover state into display components.
//
// A display unit is a pure function of its full input type P. P reports
// the hover flag through HasHoverInput. Callers never supply that flag:
// they hand the wrapper a caller input type C that omits it, and C knows
// how to complete itself into P via Merger.WithHover. Because C has no
// hover field, passing one is a compile error rather than a runtime check.
//
//	type Props struct{ Text string; IsHovered bool }
//	func (p Props) Hovered() bool { return p.IsHovered }
//
//	type Inputs struct{ Text string }
//	func (in Inputs) WithHover(h hover.Injected) Props {
//	    return Props{Text: in.Text, IsHovered: h.IsHovered}
//	}
//
//	var TextWithHover = hover.With[Inputs](TextComponent)
//
//	c := TextWithHover.New(Inputs{Text: "hello"})
//	c.OnEnterSignal() // hover on, re-render scheduled
//	c.Render()        // <div ...><p style="background-color: blue;">hello</p></div>
//
// Each Composite owns its hover signal. Transitions happen only through
// OnEnterSignal and OnLeaveSignal; each one that changes the value marks the
// composite dirty and hands it to the configured Scheduler.
package hover
