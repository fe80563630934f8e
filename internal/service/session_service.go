package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/repository/ports"
)

// DefaultSessionTTL matches the original deployment's 7-day cookie lifetime.
const DefaultSessionTTL = 7 * 24 * time.Hour

type SessionService struct {
	sessions ports.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(repo ports.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		sessions: repo,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create mints a fresh session for an already-verified identity. Token
// collisions are not handled: the id space is 128 random bits.
func (s *SessionService) Create(ctx context.Context, userID, userName string) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		UserName:   userName,
		CreatedAt:  now,
		LastAccess: now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// ValidateAndTouch is the only validation path. Absent rows and expired rows
// both come back as nil; an expired row is deleted on the spot (lazy expiry,
// no background reaper). A valid hit refreshes last_access but never moves
// expires_at.
func (s *SessionService) ValidateAndTouch(ctx context.Context, sessionID string) (*domain.SessionInfo, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil
	}

	if err := s.sessions.Touch(ctx, sessionID, s.now()); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	return &domain.SessionInfo{
		UserID:   session.UserID,
		UserName: session.UserName,
	}, nil
}

// Logout deletes the session. Unknown and already-expired ids are a no-op
// success.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
