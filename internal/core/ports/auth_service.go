package ports

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// RegisterInput carries the registration form. Role is raw input and is parsed
// by the service; empty means viewer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
