package relay

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// Connection is the part of *websocket.Conn the relay uses.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Client is one websocket connection attached to a Hub.
type Client struct {
	ID   string
	conn Connection
	send chan []byte
}

// readPump forwards every text frame to publish until the connection fails.
func (c *Client) readPump(ctx context.Context, publish func(context.Context, *Client, []byte)) error {
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		publish(ctx, c, data)
	}
}

// writePump drains send to the connection and pings it when nothing has been
// written for pingInterval. It returns nil once send is closed.
func (c *Client) writePump(pingInterval time.Duration) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < pingInterval {
				continue
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
