// Package relay rebroadcasts chat frames to every connected websocket client.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultSendBuffer   = 16
	defaultPingInterval = 30 * time.Second
)

var (
	tracer = otel.Tracer("relay")
	meter  = otel.Meter("relay")
)

// Hub tracks the clients of one relay instance and delivers every message from
// its Broker to all of them.
type Hub struct {
	broker       Broker
	sendBuffer   int
	pingInterval time.Duration

	mu      sync.Mutex
	clients map[*Client]struct{}

	connected metric.Int64UpDownCounter
	dropped   metric.Int64Counter
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithSendBuffer sets how many messages may queue for a client before it is
// treated as slow and dropped.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) { h.sendBuffer = n }
}

// WithPingInterval sets how long a connection may stay idle before a ping.
func WithPingInterval(d time.Duration) HubOption {
	return func(h *Hub) { h.pingInterval = d }
}

// NewHub creates a hub fed by broker.
func NewHub(broker Broker, opts ...HubOption) *Hub {
	h := &Hub{
		broker:       broker,
		sendBuffer:   defaultSendBuffer,
		pingInterval: defaultPingInterval,
		clients:      make(map[*Client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	var err error
	if h.connected, err = meter.Int64UpDownCounter("relay.clients",
		metric.WithDescription("Connected websocket clients")); err != nil {
		slog.Warn("Failed to create relay.clients counter", "error", err)
		h.connected = noop.Int64UpDownCounter{}
	}
	if h.dropped, err = meter.Int64Counter("relay.clients.dropped",
		metric.WithDescription("Clients dropped for falling behind")); err != nil {
		slog.Warn("Failed to create relay.clients.dropped counter", "error", err)
		h.dropped = noop.Int64Counter{}
	}
	return h
}

// Run broadcasts broker messages until ctx is cancelled or the broker closes,
// then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	defer h.closeAll()
	messages := h.broker.Messages()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			h.Broadcast(msg)
		}
	}
}

// Broadcast queues msg for every local client. A client whose queue is full
// is disconnected.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("Dropping slow client", "client.id", c.ID)
			h.dropped.Add(context.Background(), 1)
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve attaches conn to the hub and blocks until it disconnects.
func (h *Hub) Serve(ctx context.Context, conn Connection) {
	c := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
	h.register(ctx, c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		if err := c.writePump(h.pingInterval); err != nil {
			slog.Warn("Write to client failed", "client.id", c.ID, "error", err)
		}
	}()

	err := c.readPump(ctx, h.publish)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		slog.Warn("Read from client failed", "client.id", c.ID, "error", err)
	}
	h.unregister(ctx, c)
	<-done
}

func (h *Hub) publish(ctx context.Context, c *Client, msg []byte) {
	ctx, span := tracer.Start(ctx, "relay.publish", trace.WithAttributes(
		attribute.String("client.id", c.ID),
		attribute.Int("message.size", len(msg)),
	))
	defer span.End()

	if err := h.broker.Publish(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.WarnContext(ctx, "Failed to publish chat message", "client.id", c.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish chat message")
	}
}

func (h *Hub) register(ctx context.Context, c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.connected.Add(ctx, 1)
	slog.InfoContext(ctx, "Client connected", "client.id", c.ID, "clients", n)
}

func (h *Hub) unregister(ctx context.Context, c *Client) {
	h.mu.Lock()
	h.removeLocked(c)
	n := len(h.clients)
	h.mu.Unlock()

	slog.InfoContext(ctx, "Client disconnected", "client.id", c.ID, "clients", n)
}

// removeLocked detaches c and closes its queue, which stops its write pump.
func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.connected.Add(context.Background(), -1)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
