// Package stream maintains the WebSocket push channel to the gateway
// and normalizes its frames into typed events (StatusEvent,
// MessageEvent, ConnEvent) consumed by the hub. Reconnection with
// backoff is automatic; a transport-policy violation is terminal and
// reported exactly once.
package stream
