// Package gateway is the HTTP client for the bot gateway's REST API:
// session lifecycle, pairing artifacts, message sending, logic files,
// and the assistant health probe.
//
// Errors are classified so callers can react specifically: APIError
// for HTTP error answers (with the gateway's own message when it sends
// one), PolicyError for TLS/scheme mismatches that no amount of
// retrying will fix, and plain wrapped errors for everything else.
package gateway
