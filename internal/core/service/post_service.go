package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type PostService struct {
	repo  ports.PostRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPostService(repo ports.PostRepository, audit ports.AuditRecorder, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, audit: audit, log: log}
}

// Create stores a new post authored by actor. Status defaults to draft.
func (s *PostService) Create(ctx context.Context, actor domain.Principal, in ports.CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}

	status := domain.PostDraft
	if in.Status != "" {
		st, err := domain.ParsePostStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	now := time.Now().UTC()
	post, err := s.repo.Create(ctx, &domain.Post{
		Title:     title,
		Content:   content,
		AuthorID:  actor.ID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("author_id", actor.ID).Msg("failed to create post")
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("author_id", actor.ID).Msg("post created")
	return post, nil
}

// Get returns a post. Drafts are only visible to their author and to admins;
// anyone else gets NotFound so drafts are not disclosed.
func (s *PostService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(actor, post) {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// List returns a page of posts filtered by what actor may see.
func (s *PostService) List(ctx context.Context, actor domain.Principal, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	filter := ports.ListPostsFilter{
		AuthorID: strings.TrimSpace(in.AuthorID),
		Page:     in.Page,
		Limit:    in.Limit,
	}
	if in.Status != "" {
		st, err := domain.ParsePostStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	if !actor.IsAdmin() {
		filter.VisibleTo = actor.ID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListPostsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update after the ownership check.
func (s *PostService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdatePostInput) (*domain.Post, error) {
	patch, err := toPatch(in)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckOwnership(actor, post); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, post.ID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("actor_id", actor.ID).Msg("post updated")
	return updated, nil
}

// Delete removes a post after the ownership check. When two callers race,
// the second one gets NotFound from the store.
func (s *PostService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CheckOwnership(actor, post); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditPostDeleted,
		ActorID:    actor.ID,
		TargetType: "post",
		TargetID:   post.ID,
		Detail:     "author=" + post.AuthorID,
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("post_id", post.ID).Str("actor_id", actor.ID).Msg("post deleted")
	return nil
}

func visible(actor domain.Principal, post *domain.Post) bool {
	return post.Status == domain.PostPublished || actor.IsAdmin() || actor.ID == post.AuthorID
}

func toPatch(in ports.UpdatePostInput) (domain.PostPatch, error) {
	var patch domain.PostPatch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return patch, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		patch.Title = &title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return patch, fmt.Errorf("%w: content cannot be empty", domain.ErrValidation)
		}
		patch.Content = &content
	}
	if in.Status != nil {
		st, err := domain.ParsePostStatus(*in.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &st
	}
	if patch.Empty() {
		return patch, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	return patch, nil
}
