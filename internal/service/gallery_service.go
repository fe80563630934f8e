package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/media"
	"github.com/mineboard/mineboard/internal/repository/ports"
)

var (
	ErrImageValidation = errors.New("image validation failed")
)

var galleryAllowedMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type GalleryServiceConfig struct {
	Bucket        string
	MaxImageBytes int64
	MaxDimension  int
	Processor     media.Processor
}

type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type GalleryService struct {
	captions ports.CaptionRepository
	storage  ports.ObjectStorage

	bucket        string
	maxImageBytes int64
	maxDimension  int
	processor     media.Processor
}

func NewGalleryService(captions ports.CaptionRepository, storage ports.ObjectStorage, cfg GalleryServiceConfig) *GalleryService {
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	maxDim := cfg.MaxDimension
	if maxDim <= 0 {
		maxDim = media.DefaultMaxDimension
	}
	return &GalleryService{
		captions:      captions,
		storage:       storage,
		bucket:        cfg.Bucket,
		maxImageBytes: maxBytes,
		maxDimension:  maxDim,
		processor:     cfg.Processor,
	}
}

// List joins stored objects with their captions, newest first.
func (s *GalleryService) List(ctx context.Context) ([]domain.GalleryImage, error) {
	objects, err := s.storage.List(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("list gallery objects: %w", err)
	}

	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		names = append(names, obj.Name)
	}
	captions, err := s.captions.GetMany(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("load captions: %w", err)
	}

	images := make([]domain.GalleryImage, 0, len(objects))
	for _, obj := range objects {
		img := domain.GalleryImage{
			FileName:   obj.Name,
			URL:        s.storage.ObjectURL(s.bucket, obj.Name),
			Size:       obj.Size,
			UploadedAt: obj.LastModified,
		}
		if caption, ok := captions[obj.Name]; ok {
			c := caption
			img.Caption = &c
		}
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt.After(images[j].UploadedAt)
	})
	return images, nil
}

// Upload validates, processes and stores a new gallery image. An optional
// caption is written alongside.
func (s *GalleryService) Upload(ctx context.Context, upload ImageUpload, caption string) (*domain.GalleryImage, error) {
	filename, err := sanitizeFileName(upload.FileName)
	if err != nil {
		return nil, err
	}
	if upload.Size <= 0 || upload.Size > s.maxImageBytes {
		return nil, fmt.Errorf("%w: image must be between 1 byte and %d bytes", ErrImageValidation, s.maxImageBytes)
	}

	contentType := media.NormalizeContentType(upload.ContentType, filename)
	if _, ok := galleryAllowedMIMEs[contentType]; !ok {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrImageValidation, contentType)
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    filename,
		ContentType: contentType,
	}, s.maxDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageValidation, err)
	}

	url, err := s.storage.Upload(ctx, s.bucket, filename, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, fmt.Errorf("store gallery image: %w", err)
	}

	image := &domain.GalleryImage{
		FileName: filename,
		URL:      url,
		Size:     int64(len(result.Bytes)),
	}
	if trimmed := strings.TrimSpace(caption); trimmed != "" {
		if err := s.captions.Upsert(ctx, filename, trimmed); err != nil {
			return nil, fmt.Errorf("store caption: %w", err)
		}
		image.Caption = &trimmed
	}
	return image, nil
}

func (s *GalleryService) SetCaption(ctx context.Context, filename, caption string) error {
	name, err := sanitizeFileName(filename)
	if err != nil {
		return err
	}
	if strings.TrimSpace(caption) == "" {
		return fmt.Errorf("%w: caption is required", ErrImageValidation)
	}
	if err := s.captions.Upsert(ctx, name, strings.TrimSpace(caption)); err != nil {
		return fmt.Errorf("store caption: %w", err)
	}
	return nil
}

func (s *GalleryService) Delete(ctx context.Context, filename string) error {
	name, err := sanitizeFileName(filename)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, s.bucket, name); err != nil {
		return fmt.Errorf("remove gallery image: %w", err)
	}
	if err := s.captions.Delete(ctx, name); err != nil {
		return fmt.Errorf("remove caption: %w", err)
	}
	return nil
}

func sanitizeFileName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: filename is required", ErrImageValidation)
	}
	base := filepath.Base(trimmed)
	if base != trimmed || strings.Contains(trimmed, "..") {
		return "", fmt.Errorf("%w: invalid filename", ErrImageValidation)
	}
	return base, nil
}
