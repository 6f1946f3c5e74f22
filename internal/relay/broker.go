package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"ctchen222/tictactoe/internal/events"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrBrokerClosed is returned by Publish after Close.
var ErrBrokerClosed = errors.New("relay: broker closed")

// Broker carries chat messages to every hub subscribed to it.
type Broker interface {
	Publish(ctx context.Context, msg []byte) error
	// Messages delivers every published message, including this process's own.
	// It is closed when the broker closes.
	Messages() <-chan []byte
	Close() error
}

// LocalBroker is an in-process Broker for a single relay instance.
type LocalBroker struct {
	messages  chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewLocalBroker returns a broker queueing up to buffer messages.
func NewLocalBroker(buffer int) *LocalBroker {
	return &LocalBroker{
		messages: make(chan []byte, buffer),
		done:     make(chan struct{}),
	}
}

// Publish queues msg, blocking while the queue is full.
func (b *LocalBroker) Publish(ctx context.Context, msg []byte) error {
	select {
	case <-b.done:
		return ErrBrokerClosed
	default:
	}
	select {
	case b.messages <- msg:
		return nil
	case <-b.done:
		return ErrBrokerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Messages implements Broker. The channel is never closed; hubs stop on
// context cancellation instead.
func (b *LocalBroker) Messages() <-chan []byte {
	return b.messages
}

// Close makes further Publish calls fail.
func (b *LocalBroker) Close() error {
	b.closeOnce.Do(func() { close(b.done) })
	return nil
}

// RedisBroker fans messages out through a Redis Pub/Sub channel so that every
// relay instance sharing the server sees them.
type RedisBroker struct {
	rdb      *redis.Client
	pubsub   *redis.PubSub
	origin   string
	messages chan []byte
}

// NewRedisBroker subscribes to events.ChatChannel and waits for the
// subscription to be confirmed.
func NewRedisBroker(ctx context.Context, rdb *redis.Client) (*RedisBroker, error) {
	pubsub := rdb.Subscribe(ctx, events.ChatChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	b := &RedisBroker{
		rdb:      rdb,
		pubsub:   pubsub,
		origin:   uuid.NewString(),
		messages: make(chan []byte, 64),
	}
	go b.forward(pubsub.Channel())
	return b, nil
}

func (b *RedisBroker) forward(ch <-chan *redis.Message) {
	defer close(b.messages)
	for msg := range ch {
		payload, err := events.DecodeChatMessage([]byte(msg.Payload))
		if err != nil {
			slog.Warn("Could not decode chat event", "channel", msg.Channel, "error", err)
			continue
		}
		b.messages <- []byte(payload.Text)
	}
	slog.Info("Chat subscriber stopped", "channel", events.ChatChannel)
}

// Publish wraps msg in a chat_message event and publishes it.
func (b *RedisBroker) Publish(ctx context.Context, msg []byte) error {
	event, err := events.NewChatMessage(b.origin, msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, events.ChatChannel, event).Err()
}

// Messages implements Broker.
func (b *RedisBroker) Messages() <-chan []byte {
	return b.messages
}

// Close unsubscribes. The Redis client itself stays open.
func (b *RedisBroker) Close() error {
	return b.pubsub.Close()
}
