package authz

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

type principalKey struct{}

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// RequirePrincipal is PrincipalFrom that reports a missing principal as Unauthenticated.
func RequirePrincipal(ctx context.Context) (domain.Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return domain.Principal{}, unauthenticated(ReasonNoPrincipal, nil)
	}
	return p, nil
}
