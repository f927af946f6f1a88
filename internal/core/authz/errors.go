package authz

import (
	"fmt"
	"strings"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// Reasons reported by UnauthenticatedError.
const (
	ReasonNoToken           = "no token supplied"
	ReasonMalformedHeader   = "malformed authorization header"
	ReasonInvalidToken      = "token invalid or expired"
	ReasonPrincipalNotFound = "principal not found"
	ReasonNoPrincipal       = "no authenticated principal"
)

// UnauthenticatedError is returned when a request cannot be tied to a principal.
type UnauthenticatedError struct {
	Reason string
	Err    error // underlying cause, e.g. domain.ErrTokenExpired
}

func (e *UnauthenticatedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unauthenticated: %s: %v", e.Reason, e.Err)
	}
	return "unauthenticated: " + e.Reason
}

func (e *UnauthenticatedError) Is(target error) bool { return target == domain.ErrUnauthenticated }

func (e *UnauthenticatedError) Unwrap() error { return e.Err }

// ForbiddenError is returned when an authenticated principal may not perform an action.
// Required is set by the role gate, empty for ownership denials.
type ForbiddenError struct {
	Required []domain.Role
	Actual   domain.Role
	Message  string
}

func (e *ForbiddenError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return fmt.Sprintf("role %q is not authorized for this resource (requires %s)", e.Actual, strings.Join(names, ", "))
}

func (e *ForbiddenError) Is(target error) bool { return target == domain.ErrForbidden }

func unauthenticated(reason string, cause error) error {
	return &UnauthenticatedError{Reason: reason, Err: cause}
}
