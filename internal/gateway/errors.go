package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned when the gateway answers with an HTTP error
// status. The message, when the gateway provides one, is the
// operator-facing explanation from the response body.
type APIError struct {
	Path    string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway %s returned %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway %s returned status %d", e.Path, e.Code)
}

// PolicyError marks a transport-policy violation: the connection could
// not be established because the configured scheme disagrees with the
// gateway's TLS posture. It is terminal for the attempt and carries an
// actionable hint instead of a generic "connection failed".
type PolicyError struct {
	URL string
	Err error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("transport policy mismatch for %s: %v (toggle the `tls` setting in the config to match the gateway)", e.URL, e.Err)
}

func (e *PolicyError) Unwrap() error { return e.Err }

// IsPolicy reports whether err is a transport-policy violation.
func IsPolicy(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}

// IsUnauthorized reports whether err is the gateway rejecting the
// operator's token. Callers surface a re-authentication hint for this.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == http.StatusUnauthorized
}

// classifyTransport wraps dial-level errors, promoting TLS/scheme
// mismatches to PolicyError so they are not folded into generic
// connectivity failures.
func classifyTransport(url string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "server gave HTTP response to HTTPS client"),
		strings.Contains(msg, "first record does not look like a TLS handshake"),
		strings.Contains(msg, "tls: "):
		return &PolicyError{URL: url, Err: err}
	}
	return err
}
