package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/VGOT23/rbac-project/internal/core/authz"
)

// RequireRoles enforces role-based access control. The role set is built once
// when the route table is assembled, so an empty allow-list never reaches here.
func RequireRoles(allowed authz.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := authz.RequirePrincipal(c.Request().Context())
			if err != nil {
				return err
			}
			if err := authz.Authorize(principal, allowed); err != nil {
				return err
			}
			return next(c)
		}
	}
}
