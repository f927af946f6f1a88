package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	codec, err := NewJWTCodec("secret", WithClock(fixedClock(now)))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	tok, err := codec.Sign("user-1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt)
	}
	if !claims.IssuedAt.Equal(now) {
		t.Fatalf("unexpected issued at %v", claims.IssuedAt)
	}
}

func TestJWTCodec_RejectsNonPositiveTTL(t *testing.T) {
	codec, _ := NewJWTCodec("secret")

	for _, ttl := range []time.Duration{0, -time.Minute} {
		if tok, err := codec.Sign("user-1", ttl); err == nil {
			t.Fatalf("ttl %s: expected error, got token %q", ttl, tok)
		}
	}
}

func TestJWTCodec_ExpiredIsRejectedWithoutGrace(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signer, _ := NewJWTCodec("secret", WithClock(fixedClock(issued)))
	tok, err := signer.Sign("user-1", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verifier, _ := NewJWTCodec("secret", WithClock(fixedClock(issued.Add(time.Minute+time.Second))))
	if _, err := verifier.Verify(tok); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTCodec_BadSignature(t *testing.T) {
	a, _ := NewJWTCodec("secret-a")
	b, _ := NewJWTCodec("secret-b")

	tok, _ := a.Sign("user-1", time.Hour)
	if _, err := b.Verify(tok); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestJWTCodec_Malformed(t *testing.T) {
	codec, _ := NewJWTCodec("secret")
	if _, err := codec.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestJWTCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec, _ := NewJWTCodec("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Verify(signed); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestJWTCodec_RequiresExpiry(t *testing.T) {
	codec, _ := NewJWTCodec("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
	signed, _ := tok.SignedString([]byte("secret"))
	if _, err := codec.Verify(signed); err == nil {
		t.Fatalf("expected token without exp to be rejected")
	}
}

func TestNewJWTCodec_EmptySecret(t *testing.T) {
	if _, err := NewJWTCodec(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
