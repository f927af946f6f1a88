package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// Authenticator resolves an Authorization header value into a principal.
// *authz.Authenticator satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (domain.Principal, error)
}

// Authenticate runs the authentication gate and stores the resolved principal
// in the request context. Failures are returned to the HTTP error handler.
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			principal, err := auth.Authenticate(req.Context(), req.Header.Get(authz.HeaderAuthorization))
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(authz.WithPrincipal(req.Context(), principal)))
			return next(c)
		}
	}
}
