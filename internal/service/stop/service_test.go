package stop

import (
	"context"
	"errors"
	"testing"

	"fleetmanager/internal/domain"
)

type stubRepo struct {
	got        *domain.Stop
	getErr     error
	updateErr  error
	lastID     int64
	lastStatus string
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Stop, error) {
	return s.got, s.getErr
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	s.lastID = id
	s.lastStatus = status
	return s.updateErr
}

func TestUpdateStatusRequiresValue(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	err := svc.UpdateStatus(context.Background(), 1, "   ")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusWritesAnyString(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}
	if err := svc.UpdateStatus(context.Background(), 5, "on_hold"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastID != 5 || repo.lastStatus != "on_hold" {
		t.Fatalf("unexpected update: id=%d status=%q", repo.lastID, repo.lastStatus)
	}
}

func TestUpdateStatusMissingStop(t *testing.T) {
	svc := &Service{repo: &stubRepo{updateErr: domain.ErrNotFound}}
	if err := svc.UpdateStatus(context.Background(), 99, "completed"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
