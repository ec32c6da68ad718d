// Package session runs live sessions for hover composites.
//
// A Session owns one root component tree built by a Mount function. The
// Mount receives hover options that wire every composite to the session:
// state changes mark the session dirty, and the session's event loop
// re-renders the tree and sends the changed composites' containers to the
// client as replacement patches.
//
//	mgr := session.NewManager(session.DefaultConfig(), logger, nil)
//	s, err := mgr.Create(func(opts ...hover.Option) vdom.Component {
//	    c := text.WithHover.New(text.Inputs{Text: "hello"}, opts...)
//	    return vdom.Func(func() *vdom.VNode { return vdom.Main(c) })
//	})
//	html, err := s.Render()   // server-side render for the first paint
//	err = s.Attach(wsConn)    // live updates after the client connects
//
// Each session processes events on a single goroutine. Handlers, signal
// writes, and re-renders triggered by an event all run on that goroutine;
// the render mutex only guards against the HTTP render path. A heartbeat
// goroutine pings the client so an idle page keeps its connection; each
// pong pushes the read deadline forward.
package session
