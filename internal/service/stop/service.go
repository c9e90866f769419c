package stop

import (
	"context"
	"strings"

	"fleetmanager/internal/domain"
	stoprepo "fleetmanager/internal/repository/stop"
)

type repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Stop, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// Service exposes the status-only stop mutation.
type Service struct {
	repo repository
}

func New(repo stoprepo.Repository) *Service {
	return &Service{repo: repo}
}

// UpdateStatus writes the status string as given; the vocabulary is not
// enforced.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if strings.TrimSpace(status) == "" {
		return domain.Invalid("status is required")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Stop, error) {
	return s.repo.GetByID(ctx, id)
}
