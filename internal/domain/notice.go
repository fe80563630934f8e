package domain

import "time"

// Notice is a site-wide announcement from the notice catalog file.
type Notice struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// DismissedNotice records that a user permanently dismissed a notice.
// Append-only; shares user_id with Session as a loose correlation key only.
type DismissedNotice struct {
	UserID      string    `db:"user_id" json:"user_id"`
	NoticeID    string    `db:"notice_id" json:"notice_id"`
	DismissedAt time.Time `db:"dismissed_at" json:"dismissed_at"`
}
