package hub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/zapdeck/zapdeck/internal/convo"
	"github.com/zapdeck/zapdeck/internal/gateway"
	"github.com/zapdeck/zapdeck/internal/poller"
	"github.com/zapdeck/zapdeck/internal/registry"
	"github.com/zapdeck/zapdeck/internal/stream"
)

// Snapshot is the one consistent read model the presentation layer
// renders from. It is a point-in-time copy; the UI re-reads it on its
// own cadence and never mutates engine state directly.
type Snapshot struct {
	Sessions      []gateway.Session
	Selected      string
	ActiveContact string
	Contacts      []string
	Timeline      []convo.Message

	Artifact string
	Poll     poller.Health

	StreamConnected bool
	Banner          string
	AssistantOK     bool
	LastUpdated     time.Time
}

// SelectedSession returns the selected session's record, if known.
func (s Snapshot) SelectedSession() (gateway.Session, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == s.Selected {
			return sess, true
		}
	}
	return gateway.Session{}, false
}

// Hub composes the registry, the conversation store, the poller, and
// the push channel into one engine. It is the single point that decides
// which source is authoritative for what: the stream owns session
// status and messages, the poller owns the pairing artifact, and the
// hub itself owns selection, poll health scope, and artifact lifetime.
type Hub struct {
	client gateway.API
	reg    *registry.Registry
	convos *convo.Store
	poll   *poller.Poller
	logger *slog.Logger

	mu            sync.RWMutex
	selected      string
	activeContact string
	connected     bool
	banner        string
	assistantOK   bool
	lastUpdated   time.Time
}

// New wires a Hub over its collaborators.
func New(client gateway.API, reg *registry.Registry, convos *convo.Store, poll *poller.Poller, logger *slog.Logger) *Hub {
	return &Hub{
		client: client,
		reg:    reg,
		convos: convos,
		poll:   poll,
		logger: logger,
	}
}

// Bootstrap performs the one-shot initial load: session list and
// assistant health. The push channel supersedes it for live updates.
// Failures are recorded as a banner rather than aborting startup; the
// stream reconnecting later clears it.
func (h *Hub) Bootstrap(ctx context.Context) {
	sessions, err := h.client.ListSessions(ctx)
	if err != nil {
		h.logger.Warn("initial session fetch failed", slog.String("error", err.Error()))
		h.setBanner(describeFetchError(err))
	} else {
		for _, s := range sessions {
			h.reg.Upsert(s.ID, s.Status)
		}
		if len(sessions) > 0 && h.Selected() == "" {
			h.SelectSession(ctx, sessions[0].ID)
		}
	}

	h.CheckAssistant(ctx)
}

// Run applies push events in arrival order until the stream closes its
// channel or ctx is cancelled. It is the only writer of session status
// and message state, which makes "a poll response must not overwrite a
// newer status" hold trivially.
func (h *Hub) Run(ctx context.Context, events <-chan stream.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.apply(ctx, ev)
		}
	}
}

func (h *Hub) apply(ctx context.Context, ev stream.Event) {
	switch ev := ev.(type) {
	case stream.StatusEvent:
		h.reg.Upsert(ev.SessionID, ev.Status)
		if ev.SessionID == h.Selected() {
			// Leaving the pairing window discards the artifact and
			// stops the timer; entering it starts one.
			h.poll.Reconcile(ctx)
		}

	case stream.MessageEvent:
		key := convo.ContactKey(ev.From, ev.To)
		if key == "" {
			h.logger.Debug("message event without contact",
				slog.String("session", ev.SessionID),
				slog.String("from", ev.From),
			)
			break
		}
		h.convos.Touch(ev.SessionID, key)

		h.mu.RLock()
		viewing := ev.SessionID == h.selected && key == h.activeContact
		h.mu.RUnlock()
		if viewing {
			h.convos.Append(ev.SessionID, key, convo.Message{
				From:      ev.From,
				Body:      ev.Body,
				Timestamp: ev.Timestamp,
				IsMine:    convo.IsMine(ev.From),
			})
		}

	case stream.ConnEvent:
		h.mu.Lock()
		h.connected = ev.Connected
		if ev.Connected {
			// A live push channel proves the gateway is up; clear any
			// outstanding connectivity banner.
			h.banner = ""
		} else if ev.Err != nil && gateway.IsPolicy(ev.Err) {
			h.banner = ev.Err.Error()
		}
		h.mu.Unlock()
	}

	h.mu.Lock()
	h.lastUpdated = time.Now()
	h.mu.Unlock()
}

// SelectSession changes the selected session: poll health resets, the
// poller re-evaluates against the registry, and the active conversation
// is dropped. An empty id clears the selection.
func (h *Hub) SelectSession(ctx context.Context, id string) {
	h.mu.Lock()
	h.selected = id
	h.activeContact = ""
	h.mu.Unlock()

	h.poll.Select(ctx, id)
}

// SelectConversation opens a contact's conversation under the selected
// session. The buffered timeline is cleared first: views start empty
// and fill from live events only.
func (h *Hub) SelectConversation(contact string) {
	h.mu.Lock()
	session := h.selected
	h.activeContact = contact
	h.mu.Unlock()

	if session != "" && contact != "" {
		h.convos.ClearTimeline(session, contact)
	}
}

// RetryPairing re-arms a disabled poller at the operator's request.
func (h *Hub) RetryPairing(ctx context.Context) {
	h.poll.Retry(ctx)
}

// CreateSession provisions a session and selects it. The registry is
// updated only after the gateway confirms; nothing is speculated.
func (h *Hub) CreateSession(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("session name is empty")
	}
	if err := h.client.CreateSession(ctx, id); err != nil {
		return err
	}
	h.reg.Upsert(id, gateway.StatusInitializing)
	h.SelectSession(ctx, id)
	return nil
}

// DeleteSession removes a session everywhere after the gateway
// confirms. Deleting the selected session clears the selection.
func (h *Hub) DeleteSession(ctx context.Context, id string) error {
	if err := h.client.DeleteSession(ctx, id); err != nil {
		return err
	}
	h.reg.Remove(id)
	h.convos.RemoveSession(id)
	if h.Selected() == id {
		h.SelectSession(ctx, "")
	}
	return nil
}

// RestartSession cycles a session and refreshes the list so the new
// lifecycle state shows without waiting for the next push event.
func (h *Hub) RestartSession(ctx context.Context, id string) error {
	if err := h.client.RestartSession(ctx, id); err != nil {
		return err
	}
	h.RefreshSessions(ctx)
	return nil
}

// RefreshSessions re-reads the session list from the gateway. Known
// sessions get their status overwritten; unknown ones are inserted.
// Best effort: errors are logged, the push channel remains the source
// of truth.
func (h *Hub) RefreshSessions(ctx context.Context) {
	sessions, err := h.client.ListSessions(ctx)
	if err != nil {
		h.logger.Warn("session refresh failed", slog.String("error", err.Error()))
		return
	}
	for _, s := range sessions {
		h.reg.Upsert(s.ID, s.Status)
	}
}

// SendReply sends text to the open conversation. The timeline is not
// touched here; the echo arrives through the push channel like any
// other message.
func (h *Hub) SendReply(ctx context.Context, text string) error {
	h.mu.RLock()
	session, contact := h.selected, h.activeContact
	h.mu.RUnlock()

	if session == "" || contact == "" {
		return fmt.Errorf("no conversation selected")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("message is empty")
	}
	return h.client.SendMessage(ctx, session, contact, text)
}

// ListLogicFiles names the logic files of the selected session.
func (h *Hub) ListLogicFiles(ctx context.Context) ([]string, error) {
	session := h.Selected()
	if session == "" {
		return nil, fmt.Errorf("no session selected")
	}
	return h.client.ListLogicFiles(ctx, session)
}

// SaveLogicFile uploads a logic file to the selected session.
func (h *Hub) SaveLogicFile(ctx context.Context, name, content string) error {
	session := h.Selected()
	if session == "" {
		return fmt.Errorf("no session selected")
	}
	return h.client.SaveLogicFile(ctx, session, name, content)
}

// DeleteLogicFile removes a logic file from the selected session.
func (h *Hub) DeleteLogicFile(ctx context.Context, name string) error {
	session := h.Selected()
	if session == "" {
		return fmt.Errorf("no session selected")
	}
	return h.client.DeleteLogicFile(ctx, session, name)
}

// CheckAssistant refreshes the AI collaborator's health flag.
func (h *Hub) CheckAssistant(ctx context.Context) {
	health, err := h.client.AssistantHealth(ctx)
	ok := err == nil && health.Operational()

	h.mu.Lock()
	h.assistantOK = ok
	h.mu.Unlock()
}

// Selected returns the currently selected session id.
func (h *Hub) Selected() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.selected
}

// Snapshot assembles the read model. Slices are copies owned by the
// caller.
func (h *Hub) Snapshot() Snapshot {
	h.mu.RLock()
	selected := h.selected
	contact := h.activeContact
	snap := Snapshot{
		Selected:        selected,
		ActiveContact:   contact,
		StreamConnected: h.connected,
		Banner:          h.banner,
		AssistantOK:     h.assistantOK,
		LastUpdated:     h.lastUpdated,
	}
	h.mu.RUnlock()

	snap.Sessions = h.reg.List()
	snap.Poll = h.poll.Health()
	snap.Artifact = h.poll.Artifact()
	if selected != "" {
		snap.Contacts = h.convos.Contacts(selected)
		if contact != "" {
			snap.Timeline = h.convos.Timeline(selected, contact)
		}
	}
	return snap
}

func (h *Hub) setBanner(text string) {
	h.mu.Lock()
	h.banner = text
	h.mu.Unlock()
}

// describeFetchError maps startup fetch failures to operator-facing
// text, keeping the transport-policy case distinct and actionable.
func describeFetchError(err error) string {
	switch {
	case gateway.IsPolicy(err):
		return err.Error()
	case gateway.IsUnauthorized(err):
		return "gateway rejected the stored token; run `zapdeck login` again"
	default:
		return fmt.Sprintf("could not reach the gateway: %v", err)
	}
}
