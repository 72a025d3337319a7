package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

func mustTokenService(t *testing.T, secret string, ttl time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService(secret, ttl)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return ts
}

func mustIssue(t *testing.T, ts *TokenService, orgID string) string {
	t.Helper()
	token, err := ts.Issue(orgID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := mustTokenService(t, "secret", 0)
	token := mustIssue(t, ts, "org-1")

	orgID, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if orgID != "org-1" {
		t.Errorf("orgID = %q, want org-1", orgID)
	}
}

func TestTokenService_SevenDayExpiry(t *testing.T) {
	ts := mustTokenService(t, "secret", 0)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return fixed }

	token := mustIssue(t, ts, "org-1")

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := fixed.Add(7 * 24 * time.Hour).Unix(); claims.ExpiresAt.Unix() != want {
		t.Errorf("exp = %d, want %d", claims.ExpiresAt.Unix(), want)
	}
	if claims.Subject != "org-1" {
		t.Errorf("sub = %q, want org-1", claims.Subject)
	}
}

func TestTokenService_Expired(t *testing.T) {
	ts := mustTokenService(t, "secret", time.Hour)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token := mustIssue(t, ts, "org-1")

	ts.now = time.Now
	if _, err := ts.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := mustTokenService(t, "secret-a", time.Hour)
	verifier := mustTokenService(t, "secret-b", time.Hour)

	token := mustIssue(t, issuer, "org-1")
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestTokenService_RejectsMalformedAndUnsigned(t *testing.T) {
	ts := mustTokenService(t, "secret", time.Hour)

	if _, err := ts.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("malformed: expected invalid token, got %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "org-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign unsigned: %v", err)
	}
	if _, err := ts.Verify(unsigned); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("alg none: expected invalid token, got %v", err)
	}

	valid := mustIssue(t, ts, "org-1")
	tampered := valid[:len(valid)-2] + "xx"
	if _, err := ts.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("tampered: expected invalid token, got %v", err)
	}
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	ts := mustTokenService(t, "secret", time.Hour)

	forever, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  tokenIssuer,
		Subject: "org-1",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ts.Verify(forever); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
