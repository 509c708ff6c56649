package core

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestLoginWithDemoCredential(t *testing.T) {
	svc := NewInMemoryService(nil)
	ctx := context.Background()

	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("expected no signed-in user initially")
	}

	identity, err := svc.Login(ctx, DemoEmail, DemoPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Email != DemoEmail {
		t.Fatalf("expected identity email %s, got %s", DemoEmail, identity.Email)
	}
	if identity.Name != "Demo Coach" {
		t.Fatalf("expected demo display name, got %q", identity.Name)
	}

	current, ok := svc.CurrentUser()
	if !ok || current != identity {
		t.Fatalf("expected persisted identity, got %+v ok=%v", current, ok)
	}
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc := NewInMemoryService(nil)
	if _, err := svc.Login(context.Background(), "ADMIN@Coach.Com", DemoPassword); err != nil {
		t.Fatalf("login with mixed-case email: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewInMemoryService(nil)
	ctx := context.Background()
	cases := []struct{ email, password string }{
		{DemoEmail, "wrong"},
		{"other@coach.com", DemoPassword},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(ctx, tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q/%q, got %v", tc.email, tc.password, err)
		}
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("failed login must not persist an identity")
	}
}

func TestLogoutClearsIdentity(t *testing.T) {
	svc := NewInMemoryService(nil)
	ctx := context.Background()
	if _, err := svc.Login(ctx, DemoEmail, DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("expected identity cleared after logout")
	}
}

func TestWithCredentialOverridesLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	svc := NewInMemoryService(nil, WithCredential("owner@practice.example", "Practice Owner", hash))
	ctx := context.Background()

	if _, err := svc.Login(ctx, DemoEmail, DemoPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("demo credential should not match custom credential")
	}
	identity, err := svc.Login(ctx, "owner@practice.example", "hunter2")
	if err != nil {
		t.Fatalf("login with custom credential: %v", err)
	}
	if identity.Name != "Practice Owner" {
		t.Fatalf("expected custom display name, got %q", identity.Name)
	}
}
