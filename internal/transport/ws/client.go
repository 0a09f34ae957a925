package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vedran77/roster/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 64
)

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// send is closed by the hub; replies belongs to the client and is never closed.
	send    chan []byte
	replies chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufSize),
		replies: make(chan []byte, 8),
	}
}

// ReadPump reads client events until the connection fails.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event domain.Event
		if err := wsjson.Read(ctx, c.conn, &event); err != nil {
			if websocket.CloseStatus(err) == -1 {
				c.hub.log.Debug("ws: read error", "err", err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes queued messages and keeps the connection alive with pings.
// It returns when the hub closes the send channel.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusGoingAway, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(message); err != nil {
				return
			}

		case message := <-c.replies:
			if err := c.write(message); err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) write(message []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	err := c.conn.Write(ctx, websocket.MessageText, message)
	if err != nil {
		c.hub.log.Debug("ws: write error", "err", err)
	}
	return err
}

func (c *Client) handleEvent(event *domain.Event) {
	switch event.Type {
	case domain.EventTypePing:
		c.reply(&domain.Event{Type: domain.EventTypePong, Timestamp: time.Now().Unix()})
	default:
		evt, err := domain.NewEvent(domain.EventTypeError, domain.EventErrorPayload{Code: "UNKNOWN_EVENT", Message: "unknown event type: " + event.Type})
		if err == nil {
			c.reply(evt)
		}
	}
}

// reply queues an event for this client only. It is dropped if the buffer is full.
func (c *Client) reply(evt *domain.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.replies <- data:
	default:
	}
}
