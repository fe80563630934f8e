package ports

import "context"

type NoticeRepository interface {
	// RecordDismissed is an idempotent upsert of a (user, notice) pair.
	RecordDismissed(ctx context.Context, userID, noticeID string) error
	ListDismissed(ctx context.Context, userID string) ([]string, error)
}
