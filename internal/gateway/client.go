package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// API is the surface of the gateway the dashboard consumes. It is
// implemented by *Client and by test fakes.
type API interface {
	ListSessions(ctx context.Context) ([]Session, error)
	CreateSession(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
	RestartSession(ctx context.Context, id string) error
	FetchPairing(ctx context.Context, id string) (PairingResponse, error)
	SendMessage(ctx context.Context, id, number, text string) error
	ListLogicFiles(ctx context.Context, id string) ([]string, error)
	SaveLogicFile(ctx context.Context, id, name, content string) error
	DeleteLogicFile(ctx context.Context, id, name string) error
	AssistantHealth(ctx context.Context) (HealthResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the gateway's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const defaultUserAgent = "zapdeck/0.1"

// NewClient builds a Client for the given base URL (scheme + host).
// The token may be empty; authenticated endpoints will then answer 401
// and the caller surfaces a re-login hint.
func NewClient(rawURL, token string) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     token,
		userAgent: defaultUserAgent,
	}, nil
}

// Login authenticates the operator and returns the account token. It is
// the only call that does not carry a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// ListSessions retrieves the gateway's current view of all sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession asks the gateway to provision a new session under the
// operator-chosen id.
func (c *Client) CreateSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/sessions", map[string]string{"sessionId": id}, nil)
}

// DeleteSession tears a session down. Idempotent on the gateway side.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(id), nil, nil)
}

// RestartSession cycles a session through its connection flow again.
func (c *Client) RestartSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/restart", nil, nil)
}

// FetchPairing retrieves the current pairing artifact for a session in
// the pairing window. An empty QRCodeURL means the gateway has not
// produced one yet.
func (c *Client) FetchPairing(ctx context.Context, id string) (PairingResponse, error) {
	var resp PairingResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id)+"/qr", nil, &resp); err != nil {
		return PairingResponse{}, err
	}
	return resp, nil
}

// SendMessage sends a text message to a contact through a session.
func (c *Client) SendMessage(ctx context.Context, id, number, text string) error {
	body := map[string]string{"number": number, "text": text}
	return c.do(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/send", body, nil)
}

// ListLogicFiles names the logic-definition files stored under a session.
func (c *Client) ListLogicFiles(ctx context.Context, id string) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id)+"/logics", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveLogicFile uploads a named logic file to a session.
func (c *Client) SaveLogicFile(ctx context.Context, id, name, content string) error {
	body := map[string]string{"fileName": name, "content": content}
	return c.do(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/logics/text", body, nil)
}

// DeleteLogicFile removes a named logic file from a session.
func (c *Client) DeleteLogicFile(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(id)+"/logics/"+url.PathEscape(name), nil, nil)
}

// AssistantHealth checks the AI logic-generation collaborator.
func (c *Client) AssistantHealth(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health/gemini", nil, &resp); err != nil {
		return HealthResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(reqURL.String(), fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{Path: path, Code: resp.StatusCode, Message: decodeErrorMessage(resp)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeErrorMessage pulls the gateway's {"message": ...} body out of an
// error response when present. Bodies that fail to parse are ignored;
// the status code alone is still actionable.
func decodeErrorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("gateway url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url %q: %w", rawURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
