package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

const (
	reconnectMin = 2 * time.Second
	reconnectMax = time.Minute

	pingEvery   = 30 * time.Second
	pingTimeout = 10 * time.Second

	// readLimit caps inbound frames. Push events are small JSON
	// objects; anything near this size is not ours.
	readLimit = 1 << 20

	// eventChanSize buffers normalized events between the read loop
	// and the coordinator so a slow render never stalls the socket.
	eventChanSize = 64
)

// wsConn abstracts the WebSocket connection so the client can be tested
// without a real server. *websocket.Conn satisfies this interface.
type wsConn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Ping(ctx context.Context) error
	Close(code websocket.StatusCode, reason string) error
}

type dialFunc func(ctx context.Context, url string) (wsConn, error)

// Client maintains the single long-lived push connection to the
// gateway and republishes its events in normalized form.
//
// Architecture: Run owns the connection lifecycle (dial, read loop,
// liveness pings, reconnect with backoff). Inbound frames are parsed
// and emitted on Events in arrival order; the coordinator goroutine is
// the sole consumer. Malformed frames are logged and dropped, never
// fatal to the loop.
type Client struct {
	url    string
	logger *slog.Logger
	dial   dialFunc
	events chan Event
}

// New builds a Client for the given ws(s):// URL.
func New(url string, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		logger: logger,
		dial:   defaultDial,
		events: make(chan Event, eventChanSize),
	}
}

func defaultDial(ctx context.Context, url string) (wsConn, error) {
	conn, _, err := websocket.Dial(ctx, url, nil) //nolint:bodyclose // websocket.Dial closes the response body internally
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(readLimit)
	return conn, nil
}

// Events returns the normalized event sequence. The channel is closed
// when Run returns.
func (c *Client) Events() <-chan Event { return c.events }

// Run connects and keeps the push channel alive until ctx is cancelled
// or a transport-policy violation makes retrying pointless. Connection
// drops reconnect automatically with exponential backoff and jitter.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)

	backoff := reconnectMin
	for {
		conn, err := c.dial(ctx, c.url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if policy := classifyDial(c.url, err); policy != nil {
				// Terminal for this channel: retrying an insecure
				// scheme against a TLS-only gateway cannot succeed.
				c.emit(ctx, ConnEvent{Err: policy})
				return policy
			}
			c.logger.Warn("stream dial failed",
				slog.String("error", err.Error()),
				slog.Duration("backoff", backoff),
			)
			c.emit(ctx, ConnEvent{Err: err})
			if !c.sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, reconnectMax)
			continue
		}

		backoff = reconnectMin
		c.emit(ctx, ConnEvent{Connected: true})
		c.logger.Info("stream connected", slog.String("url", c.url))

		err = c.readLoop(ctx, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.emit(ctx, ConnEvent{Err: err})
		c.logger.Warn("stream connection lost, reconnecting",
			slog.String("error", err.Error()),
			slog.Duration("backoff", backoff),
		)
		if !c.sleep(ctx, backoff) {
			return ctx.Err()
		}
		backoff = min(backoff*2, reconnectMax)
	}
}

// readLoop reads frames until the connection dies. A pinger goroutine
// probes liveness so a silently dead socket is detected instead of
// blocking in Read forever.
func (c *Client) readLoop(ctx context.Context, conn wsConn) error {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-connCtx.Done():
				return
			case <-ticker.C:
				pingCtx, pingCancel := context.WithTimeout(connCtx, pingTimeout)
				err := conn.Ping(pingCtx)
				pingCancel()
				if err != nil {
					// Read unblocks with an error once the
					// connection context is cancelled.
					cancel()
					return
				}
			}
		}
	}()

	for {
		typ, data, err := conn.Read(connCtx)
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}
		if typ != websocket.MessageText {
			c.logger.Debug("unexpected binary frame", slog.Int("bytes", len(data)))
			continue
		}
		c.handleFrame(ctx, data)
	}
}

// handleFrame normalizes one inbound frame. Unparseable or unknown
// payloads are dropped with a diagnostic; they never crash the stream
// or stall subsequent events.
func (c *Client) handleFrame(ctx context.Context, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Debug("unparseable stream frame",
			slog.Int("bytes", len(data)),
			slog.String("error", err.Error()),
		)
		return
	}

	switch env.Type {
	case "status_update":
		if env.SessionID == "" || env.Status == "" {
			c.logger.Debug("status_update missing fields", slog.String("session", env.SessionID))
			return
		}
		c.emit(ctx, StatusEvent{
			SessionID: env.SessionID,
			Status:    gateway.SessionStatus(env.Status),
		})

	case "new_message":
		if env.SessionID == "" {
			c.logger.Debug("new_message missing session id")
			return
		}
		c.emit(ctx, MessageEvent{
			SessionID: env.SessionID,
			From:      env.From,
			To:        env.To,
			Body:      env.Body,
			Timestamp: env.Timestamp,
		})

	default:
		c.logger.Debug("unknown stream event", slog.String("type", env.Type))
	}
}

func (c *Client) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

// sleep waits for the backoff duration plus jitter. Returns false when
// the context was cancelled while waiting.
func (c *Client) sleep(ctx context.Context, backoff time.Duration) bool {
	jitter := time.Duration(rand.Int64N(int64(backoff) / 2)) //nolint:gosec // reconnect jitter has no security impact
	timer := time.NewTimer(backoff + jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// classifyDial promotes scheme/TLS mismatches to the transport-policy
// category so the operator gets an actionable message instead of an
// endless reconnect spinner. Returns nil for ordinary dial failures.
func classifyDial(url string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "server gave HTTP response to HTTPS client"),
		strings.Contains(msg, "first record does not look like a TLS handshake"),
		strings.Contains(msg, "tls: "):
		return &gateway.PolicyError{URL: url, Err: err}
	}
	return nil
}
