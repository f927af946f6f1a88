package ports

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// UserService defines the admin-side user management use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, actor domain.Principal, targetID, role string) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, targetID string) error
}
