package domain

import "time"

// AuditAction names a privileged mutation worth keeping a record of.
type AuditAction string

const (
	AuditUserRoleChanged AuditAction = "user.role_changed"
	AuditUserDeleted     AuditAction = "user.deleted"
	AuditPostDeleted     AuditAction = "post.deleted"
)

// AuditEvent is an append-only record of who did what to which resource.
type AuditEvent struct {
	Action     AuditAction
	ActorID    string
	TargetType string
	TargetID   string
	Detail     string
	At         time.Time
}
