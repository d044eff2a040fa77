package model

import (
	"strings"
	"testing"
)

func TestCaptureEmailRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with whitespace", "  user@example.com  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"no at sign", "not-an-email", true},
		{"no domain", "user@", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CaptureEmailRequest{Email: tt.email}
			err := req.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.email)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.email, err)
			}
		})
	}
}

func TestCaptureEmailRequest_NormalizedEmail(t *testing.T) {
	req := CaptureEmailRequest{Email: "  User@Example.COM "}
	if got := req.NormalizedEmail(); got != "user@example.com" {
		t.Fatalf("NormalizedEmail() = %q", got)
	}
}
