package order

import (
	"context"
	"time"

	"fleetmanager/internal/domain"
)

// ListFilter narrows and orders a page of orders. Zero values mean
// "no filter". SortBy/SortOrder must already be validated against the
// allow-lists; the repository rejects anything else.
type ListFilter struct {
	Search     string
	Status     string
	CustomerID int64
	SortBy     string
	SortOrder  string
	Offset     int
	Limit      int
}

// Patch carries only the fields to change: nil means "leave untouched".
// Stops, when non-nil, replaces the order's entire stop set atomically —
// a pointer to an empty slice removes every stop.
type Patch struct {
	PickupLocation   *string
	DeliveryLocation *string
	PickupDate       *time.Time
	DeliveryDate     *time.Time
	CargoType        *string
	Weight           *float64
	Dimensions       *string
	VehicleType      *string

	ContactPerson *string
	ContactPhone  *string
	ContactEmail  *string

	RouteGeometry map[string]interface{}

	BillOfLading    *string
	ContainerNumber *string
	SealNumber      *string
	Carrier         *string

	ReferenceNumber   *string
	PONumber          *string
	CustomerReference *string

	SpecialInstructions *string
	InternalNotes       *string

	QuoteAmount *float64
	Status      *string

	Stops *[]domain.Stop
}

// Repository persists orders together with their stops. Multi-row writes
// (create with stops, stop-set replacement, cascade delete) are atomic.
type Repository interface {
	Create(ctx context.Context, o domain.Order, stops []domain.Stop) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f ListFilter) ([]domain.Order, int64, error)
	Update(ctx context.Context, id int64, p Patch) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
