// Package server serves hover composites over HTTP.
//
// Routes:
//
//	GET /                  server-rendered page; creates a session
//	GET /_withhover/live   websocket bound to that session by handshake
//	GET /metrics           Prometheus metrics (when enabled)
//	GET /healthz           liveness probe
//
// The page embeds the live client, which opens the websocket, sends the
// session ID, and forwards mouseenter/mouseleave on hydrated elements.
// The server answers with one replacement patch per changed composite and
// pings the socket so an idle page stays connected.
//
//	srv := server.New(server.DefaultConfig(), server.TextPage("Demo", []string{"hello"}))
//	err := srv.Run(ctx)
package server
