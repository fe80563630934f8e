package postgres

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}

// EnsureSchema creates the tables this service owns. Safe to run on every
// startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const schema = `
        CREATE TABLE IF NOT EXISTS user_sessions (
            session_id  TEXT PRIMARY KEY,
            user_id     TEXT NOT NULL,
            user_name   TEXT NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_access TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            expires_at  TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE IF NOT EXISTS dismissed_notices (
            user_id      TEXT NOT NULL,
            notice_id    TEXT NOT NULL,
            dismissed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, notice_id)
        );

        CREATE TABLE IF NOT EXISTS image_captions (
            filename TEXT PRIMARY KEY,
            caption  TEXT
        );
    `
	_, err := db.ExecContext(ctx, schema)
	return err
}
