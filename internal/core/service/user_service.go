package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

// UserService implements admin-side user management.
type UserService struct {
	users ports.UserRepository
	posts ports.PostRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, posts ports.PostRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, posts: posts, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateRole changes another user's role. Admins cannot change their own role;
// the check runs on the stored id, not on the raw path value.
func (s *UserService) UpdateRole(ctx context.Context, actor domain.Principal, targetID, role string) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := authz.GuardSelfAction(actor.ID, target.ID); err != nil {
		return nil, err
	}
	newRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, target.ID, newRole)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditUserRoleChanged,
		ActorID:    actor.ID,
		TargetType: "user",
		TargetID:   target.ID,
		Detail:     "role=" + string(newRole),
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("actor_id", actor.ID).Str("target_id", target.ID).Str("role", string(newRole)).Msg("user role updated")
	return updated, nil
}

// Delete removes another user together with every post they authored.
// Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, targetID string) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := authz.GuardSelfAction(actor.ID, target.ID); err != nil {
		return err
	}

	removed, err := s.posts.DeleteByAuthor(ctx, target.ID)
	if err != nil {
		return fmt.Errorf("delete posts of user %s: %w", target.ID, err)
	}
	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		Action:     domain.AuditUserDeleted,
		ActorID:    actor.ID,
		TargetType: "user",
		TargetID:   target.ID,
		Detail:     fmt.Sprintf("email=%s posts_removed=%d", target.Email, removed),
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("actor_id", actor.ID).Str("target_id", target.ID).Int64("posts_removed", removed).Msg("user deleted")
	return nil
}
