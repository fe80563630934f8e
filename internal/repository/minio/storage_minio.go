package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mineboard/mineboard/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

type Storage struct {
	client     *minio.Client
	publicBase string
}

func NewStorage(client *minio.Client, publicBase string) *Storage {
	return &Storage{
		client:     client,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// EnsureBucket creates the bucket if it does not exist yet. Called once at
// startup so uploads never race bucket creation.
func (s *Storage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio create bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio upload %s/%s: %w", bucket, objectName, err)
	}
	return s.ObjectURL(bucket, objectName), nil
}

func (s *Storage) Remove(ctx context.Context, bucket, objectName string) error {
	if err := s.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio remove %s/%s: %w", bucket, objectName, err)
	}
	return nil
}

func (s *Storage) List(ctx context.Context, bucket string) ([]ports.StoredObject, error) {
	objects := make([]ports.StoredObject, 0)
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio list %s: %w", bucket, obj.Err)
		}
		objects = append(objects, ports.StoredObject{
			Name:         obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}

func (s *Storage) ObjectURL(bucket, objectName string) string {
	if s.publicBase == "" {
		return fmt.Sprintf("/%s/%s", bucket, objectName)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, bucket, objectName)
}

var _ ports.ObjectStorage = (*Storage)(nil)
