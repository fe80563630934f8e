package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mineboard/mineboard/internal/repository/ports"
)

type CaptionRepository struct {
	db *sqlx.DB
}

func NewCaptionRepo(db *sqlx.DB) *CaptionRepository {
	return &CaptionRepository{db: db}
}

func (r *CaptionRepository) Upsert(ctx context.Context, filename, caption string) error {
	const query = `
        INSERT INTO image_captions (filename, caption)
        VALUES ($1, $2)
        ON CONFLICT (filename) DO UPDATE SET caption = EXCLUDED.caption
    `
	_, err := r.db.ExecContext(ctx, query, filename, caption)
	return err
}

func (r *CaptionRepository) GetMany(ctx context.Context, filenames []string) (map[string]string, error) {
	captions := make(map[string]string, len(filenames))
	if len(filenames) == 0 {
		return captions, nil
	}

	const query = `
        SELECT filename, caption FROM image_captions
        WHERE filename = ANY($1) AND caption IS NOT NULL
    `
	rows, err := r.db.QueryxContext(ctx, query, pq.StringArray(filenames))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename, caption string
		if err := rows.Scan(&filename, &caption); err != nil {
			return nil, err
		}
		captions[filename] = caption
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return captions, nil
}

func (r *CaptionRepository) Delete(ctx context.Context, filename string) error {
	const query = `
        DELETE FROM image_captions WHERE filename = $1
    `
	_, err := r.db.ExecContext(ctx, query, filename)
	return err
}

var _ ports.CaptionRepository = (*CaptionRepository)(nil)
