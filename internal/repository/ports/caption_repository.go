package ports

import "context"

type CaptionRepository interface {
	Upsert(ctx context.Context, filename, caption string) error
	GetMany(ctx context.Context, filenames []string) (map[string]string, error)
	Delete(ctx context.Context, filename string) error
}
