package convo

import "strings"

// Actor names the gateway uses for operator-side message senders.
// Messages from these never key a conversation by their own name; the
// human counterpart on the other end is always the contact.
const (
	actorAdmin  = "ADMIN"
	actorBot    = "BOT"
	actorSystem = "SYSTEM"
)

// IsOperatorSide reports whether from denotes an operator-side actor
// rather than a remote correspondent.
func IsOperatorSide(from string) bool {
	switch from {
	case actorAdmin, actorBot, actorSystem:
		return true
	}
	return false
}

// IsMine reports whether a message with this sender renders on the
// operator's side of the conversation. SYSTEM notices are attributed to
// the conversation but not to the operator.
func IsMine(from string) bool {
	return from == actorAdmin || from == actorBot
}

// ContactKey derives the canonical contact identifier for a message.
// Operator-side senders resolve to the recipient, so both directions of
// a conversation land under the same key. Transport suffixes such as
// "@c.us" are stripped. Returns "" when no contact can be derived.
func ContactKey(from, to string) string {
	key := from
	if IsOperatorSide(from) {
		key = to
	}
	return StripSuffix(key)
}

// StripSuffix removes the transport addressing suffix from a contact
// identifier ("5511999@c.us" -> "5511999").
func StripSuffix(id string) string {
	if i := strings.IndexByte(id, '@'); i >= 0 {
		return id[:i]
	}
	return id
}
