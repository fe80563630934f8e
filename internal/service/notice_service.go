package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/repository/ports"
)

var ErrNoticeValidation = errors.New("notice validation failed")

type NoticeService struct {
	notices ports.NoticeRepository
	catalog []domain.Notice
}

func NewNoticeService(repo ports.NoticeRepository, catalog []domain.Notice) *NoticeService {
	return &NoticeService{notices: repo, catalog: catalog}
}

// Dismiss permanently hides a notice for a user. Dismissing the same pair
// twice is a no-op.
func (s *NoticeService) Dismiss(ctx context.Context, userID, noticeID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(noticeID) == "" {
		return fmt.Errorf("%w: userId and noticeId are required", ErrNoticeValidation)
	}
	if err := s.notices.RecordDismissed(ctx, userID, noticeID); err != nil {
		return fmt.Errorf("record dismissed notice: %w", err)
	}
	return nil
}

func (s *NoticeService) Dismissed(ctx context.Context, userID string) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrNoticeValidation)
	}
	dismissed, err := s.notices.ListDismissed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list dismissed notices: %w", err)
	}
	return dismissed, nil
}

// ActiveFor returns the catalog minus the notices the user dismissed. An
// empty userID (anonymous visitor) gets the whole catalog.
func (s *NoticeService) ActiveFor(ctx context.Context, userID string) ([]domain.Notice, error) {
	if userID == "" {
		return append([]domain.Notice(nil), s.catalog...), nil
	}

	dismissed, err := s.notices.ListDismissed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list dismissed notices: %w", err)
	}
	hidden := make(map[string]struct{}, len(dismissed))
	for _, id := range dismissed {
		hidden[id] = struct{}{}
	}

	active := make([]domain.Notice, 0, len(s.catalog))
	for _, notice := range s.catalog {
		if _, ok := hidden[notice.ID]; !ok {
			active = append(active, notice)
		}
	}
	return active, nil
}

// LoadNoticeCatalog reads the notice catalog YAML. A missing file is an
// empty catalog, not an error.
func LoadNoticeCatalog(path string) ([]domain.Notice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read notice catalog: %w", err)
	}

	var catalog struct {
		Notices []domain.Notice `json:"notices"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse notice catalog: %w", err)
	}
	return catalog.Notices, nil
}
