package stop

import (
	"context"

	"fleetmanager/internal/domain"
)

// Repository mutates stops only through the narrow status update. Stops are
// created and deleted exclusively with their parent order.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Stop, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
