package convo

import (
	"sync"
	"time"
)

// Message is one entry in a contact's timeline. Timelines are
// append-only and ordered by arrival, not by the timestamp field: the
// order the operator perceives must match event order.
type Message struct {
	From      string
	Body      string
	Timestamp string
	IsMine    bool
}

// ParsedTimestamp returns the message timestamp as a time.Time,
// accepting the formats the gateway is known to emit. Invalid or
// missing timestamps return the zero time.
func (m Message) ParsedTimestamp() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Store holds per-session conversation state: the list of known
// contacts (most-recently-active first) and a message timeline for the
// conversation currently being viewed. Only live events populate
// timelines; there is no history replay. The coordinator is the sole
// writer.
type Store struct {
	mu       sync.RWMutex
	contacts map[string][]string
	// timelines is keyed by session id, then contact key. Only the
	// open conversation accumulates entries, so memory stays bounded
	// by what the operator is actually looking at.
	timelines map[string]map[string][]Message
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		contacts:  make(map[string][]string),
		timelines: make(map[string]map[string][]Message),
	}
}

// Touch records activity for a contact under a session, promoting it to
// the head of the contact list (inserting it if unknown). Contacts
// already at the head are left alone.
func (s *Store) Touch(sessionID, contact string) {
	if contact == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.contacts[sessionID]
	if len(list) > 0 && list[0] == contact {
		return
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, contact)
	for _, c := range list {
		if c != contact {
			out = append(out, c)
		}
	}
	s.contacts[sessionID] = out
}

// Append adds a message to the end of a contact's timeline. Past
// entries are never reordered or mutated.
func (s *Store) Append(sessionID, contact string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byContact := s.timelines[sessionID]
	if byContact == nil {
		byContact = make(map[string][]Message)
		s.timelines[sessionID] = byContact
	}
	byContact[contact] = append(byContact[contact], msg)
}

// ClearTimeline drops the buffered timeline for a contact. Called when
// a conversation is (re)selected so the view starts empty rather than
// replaying stale entries.
func (s *Store) ClearTimeline(sessionID, contact string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if byContact := s.timelines[sessionID]; byContact != nil {
		delete(byContact, contact)
	}
}

// Contacts returns a snapshot of the contact list for a session,
// most-recent-activity first. Stable until the next mutation.
func (s *Store) Contacts(sessionID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.contacts[sessionID]
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Timeline returns a snapshot of a contact's message timeline in
// arrival order.
func (s *Store) Timeline(sessionID, contact string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byContact := s.timelines[sessionID]
	if byContact == nil {
		return nil
	}
	msgs := byContact[contact]
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// RemoveSession drops all conversation state for a deleted session.
func (s *Store) RemoveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contacts, sessionID)
	delete(s.timelines, sessionID)
}
