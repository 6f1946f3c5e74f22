package events

import (
	"encoding/json"
	"fmt"
)

// Pub/Sub channel constants
const (
	ChatChannel = "channel:chat"
)

// Event types
const (
	ChatMessage = "chat_message"
)

// Event represents a message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ChatMessagePayload is the payload for the "chat_message" event. Origin is the
// relay instance that received the frame.
type ChatMessagePayload struct {
	Origin string `json:"origin"`
	Text   string `json:"text"`
}

// NewChatMessage wraps text in an encoded chat_message event.
func NewChatMessage(origin string, text []byte) ([]byte, error) {
	payload, err := json.Marshal(ChatMessagePayload{Origin: origin, Text: string(text)})
	if err != nil {
		return nil, fmt.Errorf("marshal chat_message payload: %w", err)
	}
	return json.Marshal(Event{Type: ChatMessage, Payload: payload})
}

// DecodeChatMessage parses an encoded event. It fails for any type other than
// chat_message.
func DecodeChatMessage(data []byte) (ChatMessagePayload, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return ChatMessagePayload{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if event.Type != ChatMessage {
		return ChatMessagePayload{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	var payload ChatMessagePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return ChatMessagePayload{}, fmt.Errorf("unmarshal chat_message payload: %w", err)
	}
	return payload, nil
}
