package authz

import (
	"context"
	"errors"
	"strings"

	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

// HeaderAuthorization is the request header carrying the bearer token.
const HeaderAuthorization = "Authorization"

// Authenticator resolves bearer tokens into principals.
type Authenticator struct {
	users  ports.UserRepository
	tokens ports.TokenCodec
}

func NewAuthenticator(users ports.UserRepository, tokens ports.TokenCodec) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Authenticate verifies the token found in an Authorization header value and
// loads its subject. Results are not cached: a role change or deletion takes
// effect on the next request.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (domain.Principal, error) {
	token, err := BearerToken(header)
	if err != nil {
		return domain.Principal{}, err
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, unauthenticated(ReasonInvalidToken, err)
	}

	user, err := a.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, unauthenticated(ReasonPrincipalNotFound, err)
		}
		return domain.Principal{}, err
	}

	return user.Principal(), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", unauthenticated(ReasonNoToken, nil)
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", unauthenticated(ReasonMalformedHeader, nil)
	}
	return token, nil
}
