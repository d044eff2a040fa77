package auth

import (
	"testing"
	"time"
)

func TestSession_HasToken(t *testing.T) {
	s := Session{AccessToken: "tok"}
	if !s.HasToken() {
		t.Fatalf("expected token")
	}
	if (Session{}).HasToken() {
		t.Fatalf("did not expect token")
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{UserID: "80351110224678912", Email: "nelly@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	if id.UserID != "80351110224678912" || id.Email != "nelly@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
