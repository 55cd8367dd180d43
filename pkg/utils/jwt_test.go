package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(TokenConfig{
		Secret:    "test-secret-key-for-unit-testing",
		Algorithm: "HS256",
		TTL:       time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestTokenManager(t)

	token, err := m.Issue("5b8e2c1a-0000-4000-8000-000000000001")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "5b8e2c1a-0000-4000-8000-000000000001" {
		t.Errorf("subject = %q", subject)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestTokenManager(t)

	token, err := m.IssueWithTTL("user-1", -time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyHonoursConfiguredLeeway(t *testing.T) {
	m, err := NewTokenManager(TokenConfig{Secret: "s", TTL: time.Hour, Leeway: time.Minute})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.IssueWithTTL("user-1", -10*time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if _, err := m.Verify(token); err != nil {
		t.Errorf("token within leeway should verify, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestTokenManager(t)
	other, _ := NewTokenManager(TokenConfig{Secret: "another-secret", TTL: time.Hour})

	token, _ := other.Issue("user-1")
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	m := newTestTokenManager(t)
	other, _ := NewTokenManager(TokenConfig{Secret: "test-secret-key-for-unit-testing", Algorithm: "HS512", TTL: time.Hour})

	token, _ := other.Issue("user-1")
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	m := newTestTokenManager(t)

	claims := jwt.RegisteredClaims{Subject: "user-1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-for-unit-testing"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	m := newTestTokenManager(t)

	for _, token := range []string{"", "abc", "a.b.c", strings.Repeat("x", 300)} {
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestNewTokenManagerValidation(t *testing.T) {
	cases := []TokenConfig{
		{Secret: "", TTL: time.Hour},
		{Secret: "s", TTL: 0},
		{Secret: "s", TTL: time.Hour, Algorithm: "RS256"},
		{Secret: "s", TTL: time.Hour, Algorithm: "none"},
	}
	for _, cfg := range cases {
		if _, err := NewTokenManager(cfg); err == nil {
			t.Errorf("NewTokenManager(%+v) expected error", cfg)
		}
	}
}
