package ports

import (
	"context"

	"github.com/VGOT23/rbac-project/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Record never blocks
// the caller on the store.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
