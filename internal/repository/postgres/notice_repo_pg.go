package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mineboard/mineboard/internal/repository/ports"
)

type NoticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepo(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) RecordDismissed(ctx context.Context, userID, noticeID string) error {
	const query = `
        INSERT INTO dismissed_notices (user_id, notice_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, notice_id) DO NOTHING
    `
	_, err := r.db.ExecContext(ctx, query, userID, noticeID)
	return err
}

func (r *NoticeRepository) ListDismissed(ctx context.Context, userID string) ([]string, error) {
	const query = `
        SELECT notice_id FROM dismissed_notices
        WHERE user_id = $1
        ORDER BY dismissed_at
    `
	dismissed := make([]string, 0)
	if err := r.db.SelectContext(ctx, &dismissed, query, userID); err != nil {
		return nil, err
	}
	return dismissed, nil
}

var _ ports.NoticeRepository = (*NoticeRepository)(nil)
