package customer

import (
	"context"

	"fleetmanager/internal/domain"
)

// Repository persists and fetches customers. Customers are never updated or
// deleted through this contract.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	List(ctx context.Context, skip, limit int) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
