package ports

import (
	"context"
	"time"

	"github.com/mineboard/mineboard/internal/domain"
)

// SessionRepository exposes single-row primitives over the session table.
// Expiry semantics live in the session service, not here.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, sessionID string) (*domain.Session, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Delete(ctx context.Context, sessionID string) error
}
