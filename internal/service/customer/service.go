package customer

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"fleetmanager/internal/domain"
	custrepo "fleetmanager/internal/repository/customer"
)

const defaultListLimit = 100

type repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	List(ctx context.Context, skip, limit int) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Service handles customer creation and lookup.
type Service struct {
	repo repository
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput mirrors the incoming customer payload.
type CreateInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.Invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("invalid email address %q", email)
	}

	created, err := s.repo.Create(ctx, domain.Customer{
		Name:    name,
		Email:   email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Invalid("email %q already in use", email)
		}
		return nil, err
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.Customer, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	customers, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}
