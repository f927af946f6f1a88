package authz

import (
	"errors"
	"fmt"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// RoleSet is an immutable, non-empty set of roles accepted by a route.
type RoleSet struct {
	roles   []domain.Role
	members map[domain.Role]struct{}
}

// NewRoleSet builds a RoleSet. It fails on an empty list or an unknown role.
func NewRoleSet(roles ...domain.Role) (RoleSet, error) {
	if len(roles) == 0 {
		return RoleSet{}, errors.New("authz: role set must not be empty")
	}
	s := RoleSet{members: make(map[domain.Role]struct{}, len(roles))}
	for _, r := range roles {
		if !r.Valid() {
			return RoleSet{}, fmt.Errorf("authz: %w: %q", domain.ErrInvalidRole, r)
		}
		if _, dup := s.members[r]; dup {
			continue
		}
		s.members[r] = struct{}{}
		s.roles = append(s.roles, r)
	}
	return s, nil
}

// MustRoleSet is like NewRoleSet but panics on error. Use it when building routes.
func MustRoleSet(roles ...domain.Role) RoleSet {
	s, err := NewRoleSet(roles...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r domain.Role) bool {
	_, ok := s.members[r]
	return ok
}

// Roles returns a copy of the members in construction order.
func (s RoleSet) Roles() []domain.Role {
	out := make([]domain.Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// Authorize allows the principal iff its role is in allowed.
func Authorize(p domain.Principal, allowed RoleSet) error {
	if allowed.Contains(p.Role) {
		return nil
	}
	return &ForbiddenError{Required: allowed.Roles(), Actual: p.Role}
}

// CheckOwnership allows admins unconditionally and otherwise only the post's author.
// The caller must have resolved the post already; a missing post is the caller's NotFound.
func CheckOwnership(p domain.Principal, post *domain.Post) error {
	if p.IsAdmin() {
		return nil
	}
	if p.ID != "" && p.ID == post.AuthorID {
		return nil
	}
	return &ForbiddenError{Actual: p.Role, Message: "you may only modify your own posts"}
}

// GuardSelfAction rejects admin actions that target the acting account itself.
func GuardSelfAction(actorID, targetID string) error {
	if actorID == targetID {
		return fmt.Errorf("%w: cannot modify or delete your own account via this path", domain.ErrInvalidOperation)
	}
	return nil
}
