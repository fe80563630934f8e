package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/repository/ports"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Insert(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO user_sessions (session_id, user_id, user_name, created_at, last_access, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.ExecContext(ctx, query,
		session.SessionID,
		session.UserID,
		session.UserName,
		session.CreatedAt,
		session.LastAccess,
		session.ExpiresAt,
	)
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	const query = `
        SELECT session_id, user_id, user_name, created_at, last_access, expires_at
        FROM user_sessions
        WHERE session_id = $1
    `
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, sessionID); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	const query = `
        UPDATE user_sessions SET last_access = $2
        WHERE session_id = $1
    `
	_, err := r.db.ExecContext(ctx, query, sessionID, at)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	const query = `
        DELETE FROM user_sessions WHERE session_id = $1
    `
	_, err := r.db.ExecContext(ctx, query, sessionID)
	return err
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
