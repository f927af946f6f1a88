package ports

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// ListPostsFilter carries the query parameters for listing posts.
// Visibility rules are applied by the service before the filter reaches the store.
type ListPostsFilter struct {
	Status   domain.PostStatus // optional exact status
	AuthorID string            // optional exact author
	// VisibleTo, when non-empty, restricts results to published posts plus
	// any post authored by this user id.
	VisibleTo string
	Page      int // 1-based
	Limit     int
}

// PostRepository is the resource store for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	// Update applies patch atomically and returns the post as stored afterwards.
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	// Delete removes the post; a post that is already gone yields domain.ErrPostNotFound.
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}
