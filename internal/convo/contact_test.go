package convo

import "testing"

func TestContactKey(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"inbound keyed by sender", "5511999998888@c.us", "BOT", "5511999998888"},
		{"bot reply keyed by recipient", "BOT", "5511999998888@c.us", "5511999998888"},
		{"admin reply keyed by recipient", "ADMIN", "5511999998888@c.us", "5511999998888"},
		{"system notice keyed by recipient", "SYSTEM", "5511999998888@c.us", "5511999998888"},
		{"already stripped", "5511999998888", "BOT", "5511999998888"},
		{"no contact derivable", "BOT", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContactKey(tt.from, tt.to); got != tt.want {
				t.Fatalf("ContactKey(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsMine(t *testing.T) {
	// Both directions of a conversation share a contact key, but only
	// ADMIN and BOT render on the operator's side. SYSTEM does not.
	for from, want := range map[string]bool{
		"ADMIN":              true,
		"BOT":                true,
		"SYSTEM":             false,
		"5511999998888":      false,
		"5511999998888@c.us": false,
	} {
		if got := IsMine(from); got != want {
			t.Fatalf("IsMine(%q) = %v, want %v", from, got, want)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	if got := StripSuffix("5511999998888@c.us"); got != "5511999998888" {
		t.Fatalf("StripSuffix = %q", got)
	}
	if got := StripSuffix("5511999998888"); got != "5511999998888" {
		t.Fatalf("StripSuffix without suffix = %q", got)
	}
}
