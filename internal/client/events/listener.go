// Package events keeps the client list fresh by listening for user change
// events pushed by the server.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/vedran77/roster/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const defaultRetry = 3 * time.Second

// Refresher is told to reload whenever another client changes a user.
type Refresher interface {
	Refresh()
}

type Listener struct {
	url    string
	target Refresher
	log    *slog.Logger
	retry  time.Duration
}

func NewListener(wsURL string, target Refresher, log *slog.Logger) *Listener {
	return &Listener{url: wsURL, target: target, log: log, retry: defaultRetry}
}

// URLFromAPI turns the REST base URL (http://host/api) into the event
// stream URL (ws://host/api/ws).
func URLFromAPI(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Run listens until ctx is done, reconnecting after failures.
func (l *Listener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.log.Debug("events: connection lost", "err", err, "retry_in", l.retry)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.retry):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, l.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	l.log.Debug("events: connected", "url", l.url)

	for {
		var evt domain.Event
		if err := wsjson.Read(ctx, conn, &evt); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return errors.New("server closed the stream")
			}
			return err
		}

		if evt.IsUserChange() {
			l.target.Refresh()
		}
	}
}
