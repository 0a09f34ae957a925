package ws

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vedran77/roster/internal/logctx"
	"nhooyr.io/websocket"
)

// ServeWS upgrades the request and streams user events until either side
// closes. Browsers must come from allowedOrigin; non-browser clients send no
// Origin header and are always accepted.
func ServeWS(hub *Hub, allowedOrigin string) http.HandlerFunc {
	opts := &websocket.AcceptOptions{}
	if allowedOrigin == "*" {
		opts.InsecureSkipVerify = true
	} else if u, err := url.Parse(allowedOrigin); err == nil && u.Host != "" {
		opts.OriginPatterns = []string{u.Host}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			logctx.From(r.Context()).Warn("ws: accept error", "err", err)
			return
		}

		client := NewClient(hub, conn)
		if !hub.Register(client) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		go client.WritePump()
		client.ReadPump(context.WithoutCancel(r.Context()))
	}
}
