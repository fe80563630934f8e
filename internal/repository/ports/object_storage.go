package ports

import (
	"context"
	"io"
	"time"
)

type StoredObject struct {
	Name         string
	Size         int64
	LastModified time.Time
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Remove(ctx context.Context, bucket, objectName string) error
	List(ctx context.Context, bucket string) ([]StoredObject, error)
	ObjectURL(bucket, objectName string) string
}
