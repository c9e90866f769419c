package customer

import (
	"context"
	"errors"
	"testing"

	"fleetmanager/internal/domain"
)

type stubRepo struct {
	created    *domain.Customer
	createErr  error
	lastCreate domain.Customer

	list     []domain.Customer
	listErr  error
	lastSkip int
	lastLim  int

	got    *domain.Customer
	getErr error
}

func (s *stubRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	s.lastCreate = c
	return s.created, s.createErr
}

func (s *stubRepo) List(_ context.Context, skip, limit int) ([]domain.Customer, error) {
	s.lastSkip = skip
	s.lastLim = limit
	return s.list, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return s.got, s.getErr
}

func expectValidation(t *testing.T, err error) {
	t.Helper()
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.Create(context.Background(), CreateInput{Name: "  ", Email: "a@acme.com"})
	expectValidation(t, err)
}

func TestCreateRequiresValidEmail(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}

	_, err := svc.Create(context.Background(), CreateInput{Name: "Acme"})
	expectValidation(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Acme", Email: "not-an-email"})
	expectValidation(t, err)
}

func TestCreateNormalizesEmail(t *testing.T) {
	repo := &stubRepo{created: &domain.Customer{ID: 1}}
	svc := &Service{repo: repo}

	got, err := svc.Create(context.Background(), CreateInput{Name: "Acme", Email: "  A@Acme.COM "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected customer: %+v", got)
	}
	if repo.lastCreate.Email != "a@acme.com" {
		t.Fatalf("email not normalized: %q", repo.lastCreate.Email)
	}
}

func TestCreateDuplicateEmailIsValidationError(t *testing.T) {
	svc := &Service{repo: &stubRepo{createErr: domain.ErrAlreadyExists}}
	_, err := svc.Create(context.Background(), CreateInput{Name: "Acme", Email: "a@acme.com"})
	expectValidation(t, err)
}

func TestListClampsArguments(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}

	got, err := svc.List(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSkip != 0 || repo.lastLim != defaultListLimit {
		t.Fatalf("arguments not clamped: skip=%d limit=%d", repo.lastSkip, repo.lastLim)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestGetPassesNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{getErr: domain.ErrNotFound}}
	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
