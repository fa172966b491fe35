package ports

import (
	"context"

	audit "benefitscout/pkg/platform/audit"
)

// AuditPort matches audit.Emitter but is declared here to keep the module's
// dependencies pointing inward.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
