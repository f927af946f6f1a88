package ports

import (
	"time"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// TokenCodec signs and verifies bearer tokens.
type TokenCodec interface {
	Sign(subject string, ttl time.Duration) (string, error)
	// Verify returns the embedded claims, or one of domain.ErrTokenExpired,
	// domain.ErrTokenMalformed or domain.ErrTokenSignature.
	Verify(token string) (domain.SessionClaims, error)
}
