package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

func testClient() *Client {
	return &Client{
		url:    "ws://gateway.test",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		events: make(chan Event, eventChanSize),
	}
}

func drainOne(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev := <-c.events:
		return ev
	default:
		t.Fatal("expected an event, channel is empty")
		return nil
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case ev := <-c.events:
		t.Fatalf("expected no event, got %#v", ev)
	default:
	}
}

func TestHandleFrame_StatusUpdate(t *testing.T) {
	c := testClient()
	c.handleFrame(context.Background(), []byte(`{"type":"status_update","sessionId":"vendas","status":"READY"}`))

	ev, ok := drainOne(t, c).(StatusEvent)
	if !ok {
		t.Fatal("expected a StatusEvent")
	}
	if ev.SessionID != "vendas" || ev.Status != gateway.StatusReady {
		t.Fatalf("event = %#v, want vendas/READY", ev)
	}
}

func TestHandleFrame_NewMessage(t *testing.T) {
	c := testClient()
	c.handleFrame(context.Background(), []byte(`{
		"type":"new_message",
		"sessionId":"vendas",
		"from":"5511999998888@c.us",
		"to":"BOT",
		"body":"oi",
		"timestamp":"2026-01-02T10:05:00Z"
	}`))

	ev, ok := drainOne(t, c).(MessageEvent)
	if !ok {
		t.Fatal("expected a MessageEvent")
	}
	if ev.SessionID != "vendas" || ev.From != "5511999998888@c.us" || ev.Body != "oi" {
		t.Fatalf("event = %#v", ev)
	}
}

func TestHandleFrame_DropsMalformedAndUnknown(t *testing.T) {
	c := testClient()

	c.handleFrame(context.Background(), []byte(`{not json`))
	assertNoEvent(t, c)

	c.handleFrame(context.Background(), []byte(`{"type":"qr_refresh","sessionId":"vendas"}`))
	assertNoEvent(t, c)

	// Required fields missing: dropped, not half-applied.
	c.handleFrame(context.Background(), []byte(`{"type":"status_update","status":"READY"}`))
	assertNoEvent(t, c)
	c.handleFrame(context.Background(), []byte(`{"type":"new_message","from":"x"}`))
	assertNoEvent(t, c)

	// The frame after a bad one still flows.
	c.handleFrame(context.Background(), []byte(`{"type":"status_update","sessionId":"vendas","status":"OFFLINE"}`))
	if ev := drainOne(t, c).(StatusEvent); ev.Status != gateway.StatusOffline {
		t.Fatalf("event after dropped frames = %#v", ev)
	}
}

func TestClassifyDial(t *testing.T) {
	policyErrs := []error{
		errors.New("failed to WebSocket dial: tls: first record does not look like a TLS handshake"),
		errors.New("http: server gave HTTP response to HTTPS client"),
	}
	for _, err := range policyErrs {
		classified := classifyDial("wss://gateway.test", err)
		if classified == nil || !gateway.IsPolicy(classified) {
			t.Fatalf("classifyDial(%v) = %v, want transport-policy error", err, classified)
		}
	}

	if got := classifyDial("ws://gateway.test", errors.New("connection refused")); got != nil {
		t.Fatalf("ordinary dial failure misclassified: %v", got)
	}
}

func TestRun_PolicyErrorIsTerminal(t *testing.T) {
	c := testClient()
	dials := 0
	c.dial = func(context.Context, string) (wsConn, error) {
		dials++
		return nil, errors.New("tls: first record does not look like a TLS handshake")
	}

	err := c.Run(context.Background())
	if !gateway.IsPolicy(err) {
		t.Fatalf("Run returned %v, want transport-policy error", err)
	}
	if dials != 1 {
		t.Fatalf("dials = %d, want 1 (no retry on a policy violation)", dials)
	}

	ev := drainOne(t, c).(ConnEvent)
	if ev.Connected || !gateway.IsPolicy(ev.Err) {
		t.Fatalf("event = %#v, want disconnected with policy error", ev)
	}
	if _, open := <-c.events; open {
		t.Fatal("events channel should be closed after Run returns")
	}
}

// scriptConn serves queued frames then fails the read.
type scriptConn struct {
	frames [][]byte
	idx    int
}

func (s *scriptConn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	if s.idx >= len(s.frames) {
		<-ctx.Done()
		return 0, nil, ctx.Err()
	}
	frame := s.frames[s.idx]
	s.idx++
	return websocket.MessageText, frame, nil
}

func (s *scriptConn) Ping(context.Context) error { return nil }

func (s *scriptConn) Close(websocket.StatusCode, string) error { return nil }

func TestRun_EmitsEventsInArrivalOrder(t *testing.T) {
	c := testClient()
	c.dial = func(context.Context, string) (wsConn, error) {
		return &scriptConn{frames: [][]byte{
			[]byte(`{"type":"status_update","sessionId":"vendas","status":"QR_PENDING"}`),
			[]byte(`{"type":"status_update","sessionId":"vendas","status":"READY"}`),
		}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	expect := []gateway.SessionStatus{gateway.StatusQRPending, gateway.StatusReady}
	var got []gateway.SessionStatus
	timeout := time.After(2 * time.Second)
	for len(got) < len(expect)+1 {
		select {
		case ev := <-c.events:
			if st, ok := ev.(StatusEvent); ok {
				got = append(got, st.Status)
			}
			if len(got) == len(expect) {
				cancel()
			}
			if conn, ok := ev.(ConnEvent); ok && !conn.Connected {
				t.Fatalf("unexpected disconnect event: %#v", conn)
			}
		case err := <-done:
			if len(got) != len(expect) {
				t.Fatalf("Run exited early: %v, events %v", err, got)
			}
			for i := range expect {
				if got[i] != expect[i] {
					t.Fatalf("event order = %v, want %v", got, expect)
				}
			}
			return
		case <-timeout:
			t.Fatalf("timed out, events so far %v", got)
		}
	}
}
