package gateway

import "time"

// SessionStatus is the lifecycle state of a managed bot session as
// reported by the gateway.
type SessionStatus string

const (
	StatusInitializing SessionStatus = "INITIALIZING"
	StatusQRPending    SessionStatus = "QR_PENDING"
	StatusReady        SessionStatus = "READY"
	StatusError        SessionStatus = "ERROR"
	StatusOffline      SessionStatus = "OFFLINE"
	StatusDestroying   SessionStatus = "DESTROYING"
)

// Pairing reports whether the session is in the window where a pairing
// artifact (QR code) is meaningful. Once a session leaves this window
// any cached artifact must be discarded.
func (s SessionStatus) Pairing() bool {
	return s == StatusInitializing || s == StatusQRPending
}

// Session is one managed messaging-bot endpoint.
type Session struct {
	ID     string        `json:"id"`
	Status SessionStatus `json:"status"`
}

// PairingResponse carries the transient pairing artifact for a session
// that has not connected yet.
type PairingResponse struct {
	QRCodeURL string `json:"qrCodeUrl"`
}

// HealthResponse is the health report of the AI logic-generation
// collaborator behind the gateway.
type HealthResponse struct {
	Status string `json:"status"`
}

// Operational reports whether the assistant backend is usable.
func (h HealthResponse) Operational() bool {
	return h.Status == "OPERATIONAL"
}

// LoginResponse is the gateway's answer to a successful authentication.
type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Plan     string `json:"plan"`
}

// LogicFile is a named logic-definition file stored under a session.
type LogicFile struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// requestTimeout bounds every gateway round trip.
const requestTimeout = 5 * time.Second
