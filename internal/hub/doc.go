// Package hub coordinates zapdeck's two update channels into one
// consistent view of the gateway.
//
// Session state arrives two ways: pushed over the event stream
// (status changes, messages) and pulled by the pairing poller (QR
// artifacts). The hub resolves the overlap with a single ownership
// rule: the stream owns session status and message traffic, the
// poller owns the pairing artifact, and the hub itself owns
// selection, poll health scope, and artifact lifetime. Run is the
// only writer that applies stream events, in arrival order, so the
// latest pushed status always wins and a poll response can never
// overwrite it.
//
// The presentation layer interacts with the hub in exactly two ways:
// it reads Snapshot, and it calls command methods (select, create,
// delete, send, retry). Commands validate, call the gateway, and only
// then update local state; nothing is speculated ahead of the
// gateway's confirmation.
package hub
