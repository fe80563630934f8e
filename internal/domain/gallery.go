package domain

import "time"

// GalleryImage is a stored community image plus its optional caption.
// Bytes live in object storage; only the caption is kept in Postgres.
type GalleryImage struct {
	FileName   string    `json:"filename"`
	URL        string    `json:"url"`
	Caption    *string   `json:"caption,omitempty"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
