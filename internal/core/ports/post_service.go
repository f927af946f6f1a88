package ports

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// CreatePostInput carries the fields of a new post. Status is raw input; empty means draft.
type CreatePostInput struct {
	Title   string
	Content string
	Status  string
}

// UpdatePostInput is a partial update; nil fields are left as they are.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Status  *string
}

// ListPostsInput carries the list endpoint query.
type ListPostsInput struct {
	Status   string
	AuthorID string
	Page     int
	Limit    int
}

// ListPostsResult is a single page of posts.
type ListPostsResult struct {
	Items      []*domain.Post
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines the post use cases. Every call acts on behalf of an
// authenticated principal.
type PostService interface {
	Create(ctx context.Context, actor domain.Principal, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.Post, error)
	List(ctx context.Context, actor domain.Principal, input ListPostsInput) (*ListPostsResult, error)
	Update(ctx context.Context, actor domain.Principal, id string, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
