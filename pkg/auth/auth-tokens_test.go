package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	var ts = NewTokenService("test-secret", time.Hour)

	token, err := ts.Generate("user-1", RoleAutor)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	identity, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if identity.UserId != "user-1" {
		t.Errorf("expected user id %q, got %q", "user-1", identity.UserId)
	}
	if identity.Role != RoleAutor {
		t.Errorf("expected role %q, got %q", RoleAutor, identity.Role)
	}
}

func TestTokenExpiry(t *testing.T) {
	var ts = NewTokenService("test-secret", -time.Minute)

	token, err := ts.Generate("user-1", RoleLector)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err = ts.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected %v, got %v", ErrTokenExpired, err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("first-secret", time.Hour).Generate("user-1", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err = NewTokenService("second-secret", time.Hour).Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected %v, got %v", ErrTokenInvalid, err)
	}
}

func TestTokenGarbage(t *testing.T) {
	var ts = NewTokenService("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ts.Validate(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected %v for %q, got %v", ErrTokenInvalid, token, err)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role  Role
		admin bool
		known bool
	}{
		{RoleLector, false, true},
		{RoleAutor, false, true},
		{RoleAdmin, true, true},
		{Role("Editor"), false, false},
		{Role(""), false, false},
	}

	for _, tc := range cases {
		if got := tc.role.IsAdmin(); got != tc.admin {
			t.Errorf("%q.IsAdmin() = %v, expected %v", tc.role, got, tc.admin)
		}
		if got := tc.role.Known(); got != tc.known {
			t.Errorf("%q.Known() = %v, expected %v", tc.role, got, tc.known)
		}
	}
}
