package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetmanager/internal/domain"
	orderrepo "fleetmanager/internal/repository/order"
)

type stubRepo struct {
	createOrder *domain.Order
	createErr   error
	lastOrder   domain.Order
	lastStops   []domain.Stop

	getOrder *domain.Order
	getErr   error

	listOrders []domain.Order
	listTotal  int64
	listErr    error
	lastFilter orderrepo.ListFilter

	updateOrder  *domain.Order
	updateErr    error
	lastUpdateID int64
	lastPatch    orderrepo.Patch

	deleteErr    error
	lastDeleteID int64
}

func (s *stubRepo) Create(_ context.Context, o domain.Order, stops []domain.Stop) (*domain.Order, error) {
	s.lastOrder = o
	s.lastStops = stops
	return s.createOrder, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.getOrder, s.getErr
}

func (s *stubRepo) List(_ context.Context, f orderrepo.ListFilter) ([]domain.Order, int64, error) {
	s.lastFilter = f
	return s.listOrders, s.listTotal, s.listErr
}

func (s *stubRepo) Update(_ context.Context, id int64, p orderrepo.Patch) (*domain.Order, error) {
	s.lastUpdateID = id
	s.lastPatch = p
	return s.updateOrder, s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.lastDeleteID = id
	return s.deleteErr
}

func strPtr(v string) *string {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func validCreateInput() CreateInput {
	return CreateInput{
		CustomerID:       1,
		PickupLocation:   "New York, NY",
		DeliveryLocation: "Philadelphia, PA",
		PickupDate:       time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC),
		DeliveryDate:     time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
		CargoType:        "Office Furniture",
		Weight:           floatPtr(100),
		Stops: []StopInput{
			{Sequence: 1, Location: "New York, NY", StopType: "pickup", ScheduledTime: time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)},
			{Sequence: 2, Location: "Philadelphia, PA", StopType: "delivery", ScheduledTime: time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)},
		},
	}
}

func expectValidation(t *testing.T, err error) {
	t.Helper()
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing customer", func(in *CreateInput) { in.CustomerID = 0 }},
		{"missing pickup location", func(in *CreateInput) { in.PickupLocation = "  " }},
		{"missing delivery location", func(in *CreateInput) { in.DeliveryLocation = "" }},
		{"missing pickup date", func(in *CreateInput) { in.PickupDate = time.Time{} }},
		{"missing delivery date", func(in *CreateInput) { in.DeliveryDate = time.Time{} }},
		{"missing cargo type", func(in *CreateInput) { in.CargoType = "" }},
		{"missing weight", func(in *CreateInput) { in.Weight = nil }},
		{"stop without location", func(in *CreateInput) { in.Stops[0].Location = "" }},
		{"stop without type", func(in *CreateInput) { in.Stops[1].StopType = "" }},
		{"stop without scheduled time", func(in *CreateInput) { in.Stops[0].ScheduledTime = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			expectValidation(t, err)
		})
	}
}

func TestCreateDefaultsAndStopPassthrough(t *testing.T) {
	repo := &stubRepo{createOrder: &domain.Order{ID: 1}}
	svc := &Service{repo: repo}

	in := validCreateInput()
	got, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if repo.lastOrder.Status != "pending" {
		t.Fatalf("expected default status pending, got %q", repo.lastOrder.Status)
	}
	if repo.lastOrder.QuoteAmount != 0 {
		t.Fatalf("expected default quote 0, got %v", repo.lastOrder.QuoteAmount)
	}
	if repo.lastOrder.Weight != 100 {
		t.Fatalf("unexpected weight %v", repo.lastOrder.Weight)
	}
	if len(repo.lastStops) != 2 || repo.lastStops[0].Sequence != 1 || repo.lastStops[1].Sequence != 2 {
		t.Fatalf("stops not passed through as given: %+v", repo.lastStops)
	}
}

func TestCreateKeepsExplicitStatusAndQuote(t *testing.T) {
	repo := &stubRepo{createOrder: &domain.Order{ID: 1}}
	svc := &Service{repo: repo}

	in := validCreateInput()
	in.Status = "in_progress"
	in.QuoteAmount = floatPtr(1850)
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastOrder.Status != "in_progress" || repo.lastOrder.QuoteAmount != 1850 {
		t.Fatalf("explicit values not kept: %+v", repo.lastOrder)
	}
}

func TestCreateUnknownCustomerPassesNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{createErr: domain.ErrNotFound}}
	_, err := svc.Create(context.Background(), validCreateInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateWrapsStorageErrorAsValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{createErr: errors.New("tx aborted")}}
	_, err := svc.Create(context.Background(), validCreateInput())
	expectValidation(t, err)
}

func TestListValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}

	cases := []struct {
		name string
		in   ListInput
	}{
		{"page zero", ListInput{Page: 0, Limit: 10}},
		{"limit zero", ListInput{Page: 1, Limit: 0}},
		{"limit too large", ListInput{Page: 1, Limit: 101}},
		{"bad sort field", ListInput{Page: 1, Limit: 10, SortBy: "weight"}},
		{"bad sort order", ListInput{Page: 1, Limit: 10, SortOrder: "sideways"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tc.in)
			expectValidation(t, err)
		})
	}
}

func TestListDefaultsAndOffset(t *testing.T) {
	repo := &stubRepo{listOrders: make([]domain.Order, 5), listTotal: 15}
	svc := &Service{repo: repo}

	res, err := svc.List(context.Background(), ListInput{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.SortBy != "created_at" || repo.lastFilter.SortOrder != "desc" {
		t.Fatalf("defaults not applied: %+v", repo.lastFilter)
	}
	if repo.lastFilter.Offset != 10 || repo.lastFilter.Limit != 10 {
		t.Fatalf("unexpected pagination: %+v", repo.lastFilter)
	}
	if res.Total != 15 || res.TotalPages != 2 || len(res.Orders) != 5 {
		t.Fatalf("unexpected result: total=%d pages=%d orders=%d", res.Total, res.TotalPages, len(res.Orders))
	}
}

func TestListEmptyResult(t *testing.T) {
	repo := &stubRepo{listOrders: nil, listTotal: 0}
	svc := &Service{repo: repo}

	res, err := svc.List(context.Background(), ListInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Orders == nil || len(res.Orders) != 0 {
		t.Fatalf("expected empty slice, got %#v", res.Orders)
	}
	if res.TotalPages != 0 {
		t.Fatalf("expected 0 pages, got %d", res.TotalPages)
	}
}

func TestListFiltersPassedThrough(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}

	_, err := svc.List(context.Background(), ListInput{
		Page:       1,
		Limit:      10,
		Search:     " Chicago ",
		Status:     "pending",
		CustomerID: 3,
		SortBy:     "status",
		SortOrder:  "asc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := repo.lastFilter
	if f.Search != "Chicago" || f.Status != "pending" || f.CustomerID != 3 || f.SortBy != "status" || f.SortOrder != "asc" {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestUpdatePatchOnlyProvidedFields(t *testing.T) {
	repo := &stubRepo{updateOrder: &domain.Order{ID: 7}}
	svc := &Service{repo: repo}

	_, err := svc.Update(context.Background(), 7, UpdateInput{
		Status:      strPtr("completed"),
		QuoteAmount: floatPtr(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := repo.lastPatch
	if p.Status == nil || *p.Status != "completed" {
		t.Fatalf("status not patched: %+v", p)
	}
	if p.QuoteAmount == nil || *p.QuoteAmount != 500 {
		t.Fatalf("quote not patched: %+v", p)
	}
	if p.PickupLocation != nil || p.Weight != nil || p.Stops != nil {
		t.Fatalf("unset fields leaked into patch: %+v", p)
	}
}

func TestUpdateWithEmptyStopListReplacesAll(t *testing.T) {
	repo := &stubRepo{updateOrder: &domain.Order{ID: 7, Stops: []domain.Stop{}}}
	svc := &Service{repo: repo}

	empty := []StopInput{}
	_, err := svc.Update(context.Background(), 7, UpdateInput{Stops: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastPatch.Stops == nil {
		t.Fatalf("expected stop replacement, got nil")
	}
	if len(*repo.lastPatch.Stops) != 0 {
		t.Fatalf("expected empty replacement set, got %+v", *repo.lastPatch.Stops)
	}
}

func TestUpdateStopValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}

	stops := []StopInput{{Sequence: 1, Location: "", StopType: "pickup", ScheduledTime: time.Now()}}
	_, err := svc.Update(context.Background(), 7, UpdateInput{Stops: &stops})
	expectValidation(t, err)
}

func TestUpdateMissingOrderPassesNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{updateErr: domain.ErrNotFound}}
	_, err := svc.Update(context.Background(), 99, UpdateInput{Status: strPtr("completed")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateWrapsStorageErrorAsValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{updateErr: errors.New("deadlock")}}
	_, err := svc.Update(context.Background(), 7, UpdateInput{Status: strPtr("completed")})
	expectValidation(t, err)
}

func TestDeletePassesThrough(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}
	if err := svc.Delete(context.Background(), 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastDeleteID != 12 {
		t.Fatalf("unexpected delete id %d", repo.lastDeleteID)
	}

	svc = &Service{repo: &stubRepo{deleteErr: domain.ErrNotFound}}
	if err := svc.Delete(context.Background(), 12); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
