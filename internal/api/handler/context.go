package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// principal returns the caller resolved by the Authenticate middleware. A
// missing principal means the route was wired without it and is reported as
// Unauthenticated rather than served anonymously.
func principal(c echo.Context) (domain.Principal, error) {
	return authz.RequirePrincipal(c.Request().Context())
}
