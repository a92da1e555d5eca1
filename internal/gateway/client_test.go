package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListSessions(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"vendas","status":"READY"},{"id":"suporte","status":"QR_PENDING"}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "tok123")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	sessions, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}

	if gotPath != "/api/sessions" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(sessions) != 2 || sessions[0].ID != "vendas" || sessions[0].Status != StatusReady {
		t.Fatalf("sessions = %#v", sessions)
	}
}

func TestClient_FetchPairing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/vendas/qr" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"qrCodeUrl":"data:image/png;base64,abc"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	resp, err := c.FetchPairing(context.Background(), "vendas")
	if err != nil {
		t.Fatalf("FetchPairing: %v", err)
	}
	if resp.QRCodeURL != "data:image/png;base64,abc" {
		t.Fatalf("QRCodeURL = %q", resp.QRCodeURL)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Sessão não encontrada"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	err := c.DeleteSession(context.Background(), "ghost")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Code != http.StatusNotFound || apiErr.Message != "Sessão não encontrada" {
		t.Fatalf("APIError = %#v", apiErr)
	}
}

func TestClient_UnauthorizedDetection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "expired")
	_, err := c.ListSessions(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestClient_LoginOmitsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login carried Authorization %q", got)
		}
		_, _ = w.Write([]byte(`{"token":"fresh","username":"op","plan":"pro"}`))
	}))
	defer srv.Close()

	// A client with no stored token is exactly the login path.
	c, _ := NewClient(srv.URL, "")
	resp, err := c.Login(context.Background(), "op", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "fresh" || resp.Username != "op" {
		t.Fatalf("LoginResponse = %#v", resp)
	}
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"127.0.0.1:3033", "http://127.0.0.1:3033", false},
		{"https://gateway.example.com", "https://gateway.example.com", false},
		{"http://gateway.example.com/some/path?x=1#frag", "http://gateway.example.com", false},
		{"  gateway.example.com  ", "http://gateway.example.com", false},
		{"", "", true},
	}
	for _, tt := range tests {
		u, err := parseBaseURL(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseBaseURL(%q) = %v, want error", tt.raw, u)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseBaseURL(%q): %v", tt.raw, err)
		}
		if u.String() != tt.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tt.raw, u.String(), tt.want)
		}
	}
}
