package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleetmanager/internal/domain"
	orderrepo "fleetmanager/internal/repository/order"
)

const (
	defaultSortBy    = "created_at"
	defaultSortOrder = "desc"
	maxPageLimit     = 100
)

var sortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"status":     true,
	"id":         true,
}

type repository interface {
	Create(ctx context.Context, o domain.Order, stops []domain.Stop) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, int64, error)
	Update(ctx context.Context, id int64, p orderrepo.Patch) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

// Service validates order requests and drives the transactional repository.
type Service struct {
	repo repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// StopInput mirrors an incoming stop payload. Sequence duplicates and gaps
// are accepted as given.
type StopInput struct {
	Sequence      int       `json:"sequence"`
	Location      string    `json:"location"`
	StopType      string    `json:"stop_type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	ContactPerson *string   `json:"contact_person"`
	ContactPhone  *string   `json:"contact_phone"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
}

// CreateInput mirrors the incoming order payload.
type CreateInput struct {
	CustomerID       int64     `json:"customer_id"`
	PickupLocation   string    `json:"pickup_location"`
	DeliveryLocation string    `json:"delivery_location"`
	PickupDate       time.Time `json:"pickup_date"`
	DeliveryDate     time.Time `json:"delivery_date"`
	CargoType        string    `json:"cargo_type"`
	Weight           *float64  `json:"weight"`
	Dimensions       *string   `json:"dimensions"`
	VehicleType      *string   `json:"vehicle_type"`

	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`

	RouteGeometry map[string]interface{} `json:"route_geometry"`

	BillOfLading    *string `json:"bill_of_lading"`
	ContainerNumber *string `json:"container_number"`
	SealNumber      *string `json:"seal_number"`
	Carrier         *string `json:"carrier"`

	ReferenceNumber   *string `json:"reference_number"`
	PONumber          *string `json:"po_number"`
	CustomerReference *string `json:"customer_reference"`

	SpecialInstructions *string `json:"special_instructions"`
	InternalNotes       *string `json:"internal_notes"`

	QuoteAmount *float64 `json:"quote_amount"`
	Status      string   `json:"status"`

	Stops []StopInput `json:"stops"`
}

// UpdateInput carries a partial order: nil fields are left untouched.
// Stops, when present (including an explicit empty list), replaces the
// order's whole stop set.
type UpdateInput struct {
	PickupLocation   *string    `json:"pickup_location"`
	DeliveryLocation *string    `json:"delivery_location"`
	PickupDate       *time.Time `json:"pickup_date"`
	DeliveryDate     *time.Time `json:"delivery_date"`
	CargoType        *string    `json:"cargo_type"`
	Weight           *float64   `json:"weight"`
	Dimensions       *string    `json:"dimensions"`
	VehicleType      *string    `json:"vehicle_type"`

	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`

	RouteGeometry map[string]interface{} `json:"route_geometry"`

	BillOfLading    *string `json:"bill_of_lading"`
	ContainerNumber *string `json:"container_number"`
	SealNumber      *string `json:"seal_number"`
	Carrier         *string `json:"carrier"`

	ReferenceNumber   *string `json:"reference_number"`
	PONumber          *string `json:"po_number"`
	CustomerReference *string `json:"customer_reference"`

	SpecialInstructions *string `json:"special_instructions"`
	InternalNotes       *string `json:"internal_notes"`

	QuoteAmount *float64 `json:"quote_amount"`
	Status      *string  `json:"status"`

	Stops *[]StopInput `json:"stops"`
}

// ListInput is the parsed query surface of the order listing.
type ListInput struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	CustomerID int64
	SortBy     string
	SortOrder  string
}

// ListResult is one page of orders with pagination metadata.
type ListResult struct {
	Orders     []domain.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int64          `json:"total_pages"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if in.CustomerID <= 0 {
		return nil, domain.Invalid("customer_id is required")
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		return nil, domain.Invalid("pickup_location is required")
	}
	if strings.TrimSpace(in.DeliveryLocation) == "" {
		return nil, domain.Invalid("delivery_location is required")
	}
	if in.PickupDate.IsZero() {
		return nil, domain.Invalid("pickup_date is required")
	}
	if in.DeliveryDate.IsZero() {
		return nil, domain.Invalid("delivery_date is required")
	}
	if strings.TrimSpace(in.CargoType) == "" {
		return nil, domain.Invalid("cargo_type is required")
	}
	if in.Weight == nil {
		return nil, domain.Invalid("weight is required")
	}
	stops, err := convertStops(in.Stops)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "pending"
	}
	quote := 0.0
	if in.QuoteAmount != nil {
		quote = *in.QuoteAmount
	}

	o := domain.Order{
		CustomerID:          in.CustomerID,
		PickupLocation:      in.PickupLocation,
		DeliveryLocation:    in.DeliveryLocation,
		PickupDate:          in.PickupDate,
		DeliveryDate:        in.DeliveryDate,
		CargoType:           in.CargoType,
		Weight:              *in.Weight,
		Dimensions:          in.Dimensions,
		VehicleType:         in.VehicleType,
		ContactPerson:       in.ContactPerson,
		ContactPhone:        in.ContactPhone,
		ContactEmail:        in.ContactEmail,
		RouteGeometry:       in.RouteGeometry,
		BillOfLading:        in.BillOfLading,
		ContainerNumber:     in.ContainerNumber,
		SealNumber:          in.SealNumber,
		Carrier:             in.Carrier,
		ReferenceNumber:     in.ReferenceNumber,
		PONumber:            in.PONumber,
		CustomerReference:   in.CustomerReference,
		SpecialInstructions: in.SpecialInstructions,
		InternalNotes:       in.InternalNotes,
		QuoteAmount:         quote,
		Status:              status,
	}

	created, err := s.repo.Create(ctx, o, stops)
	if err != nil {
		return nil, asValidation(err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if in.Page < 1 {
		return nil, domain.Invalid("page must be >= 1")
	}
	if in.Limit < 1 || in.Limit > maxPageLimit {
		return nil, domain.Invalid("limit must be between 1 and %d", maxPageLimit)
	}
	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	if !sortFields[sortBy] {
		return nil, domain.Invalid("unsupported sort_by %q", in.SortBy)
	}
	sortOrder := strings.ToLower(in.SortOrder)
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return nil, domain.Invalid("sort_order must be asc or desc")
	}

	orders, total, err := s.repo.List(ctx, orderrepo.ListFilter{
		Search:     strings.TrimSpace(in.Search),
		Status:     strings.TrimSpace(in.Status),
		CustomerID: in.CustomerID,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Offset:     (in.Page - 1) * in.Limit,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	return &ListResult{
		Orders:     orders,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: (total + int64(in.Limit) - 1) / int64(in.Limit),
	}, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Order, error) {
	p := orderrepo.Patch{
		PickupLocation:      in.PickupLocation,
		DeliveryLocation:    in.DeliveryLocation,
		PickupDate:          in.PickupDate,
		DeliveryDate:        in.DeliveryDate,
		CargoType:           in.CargoType,
		Weight:              in.Weight,
		Dimensions:          in.Dimensions,
		VehicleType:         in.VehicleType,
		ContactPerson:       in.ContactPerson,
		ContactPhone:        in.ContactPhone,
		ContactEmail:        in.ContactEmail,
		RouteGeometry:       in.RouteGeometry,
		BillOfLading:        in.BillOfLading,
		ContainerNumber:     in.ContainerNumber,
		SealNumber:          in.SealNumber,
		Carrier:             in.Carrier,
		ReferenceNumber:     in.ReferenceNumber,
		PONumber:            in.PONumber,
		CustomerReference:   in.CustomerReference,
		SpecialInstructions: in.SpecialInstructions,
		InternalNotes:       in.InternalNotes,
		QuoteAmount:         in.QuoteAmount,
		Status:              in.Status,
	}

	if in.Stops != nil {
		stops, err := convertStops(*in.Stops)
		if err != nil {
			return nil, err
		}
		p.Stops = &stops
	}

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, asValidation(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func convertStops(inputs []StopInput) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Location) == "" {
			return nil, domain.Invalid("stops[%d].location is required", i)
		}
		if strings.TrimSpace(in.StopType) == "" {
			return nil, domain.Invalid("stops[%d].stop_type is required", i)
		}
		if in.ScheduledTime.IsZero() {
			return nil, domain.Invalid("stops[%d].scheduled_time is required", i)
		}
		stops = append(stops, domain.Stop{
			Sequence:      in.Sequence,
			Location:      in.Location,
			StopType:      in.StopType,
			ScheduledTime: in.ScheduledTime,
			ContactPerson: in.ContactPerson,
			ContactPhone:  in.ContactPhone,
			Latitude:      in.Latitude,
			Longitude:     in.Longitude,
		})
	}
	return stops, nil
}

// asValidation keeps NotFound and validation errors as-is and reports any
// other failure of a rolled-back multi-statement write as a validation
// error, which the caller surfaces as a client error.
func asValidation(err error) error {
	var vErr *domain.ValidationError
	if errors.Is(err, domain.ErrNotFound) || errors.As(err, &vErr) {
		return err
	}
	return domain.Invalid("order write failed: %v", err)
}
