package stream

import "github.com/zapdeck/zapdeck/internal/gateway"

// Event is a normalized push-channel occurrence. The concrete types are
// StatusEvent, MessageEvent, and ConnEvent.
type Event interface{ event() }

// StatusEvent reports a session lifecycle change.
type StatusEvent struct {
	SessionID string
	Status    gateway.SessionStatus
}

// MessageEvent reports a message observed under a session. Contact-key
// derivation is left to the consumer so the stream stays a pure
// normalizer.
type MessageEvent struct {
	SessionID string
	From      string
	To        string
	Body      string
	Timestamp string
}

// ConnEvent reports a change in the push channel itself: opened
// (Connected true), or closed/failed with the triggering error. A
// transport-policy violation arrives exactly once, as the final event.
type ConnEvent struct {
	Connected bool
	Err       error
}

func (StatusEvent) event()  {}
func (MessageEvent) event() {}
func (ConnEvent) event()    {}

// envelope is the wire shape of both push event kinds. Unknown fields
// are ignored so the gateway can grow its payloads.
type envelope struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	From      string `json:"from"`
	To        string `json:"to"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}
