package seed

import (
	"context"
	"fmt"
	"time"

	"fleetmanager/internal/domain"
	orderrepo "fleetmanager/internal/repository/order"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type orderSeed struct {
	CustomerEmail    string
	PickupLocation   string
	DeliveryLocation string
	PickupIn         time.Duration
	TransitTime      time.Duration
	CargoType        string
	Weight           float64
	VehicleType      string
	Carrier          string
	ReferenceNumber  string
	Status           string
	QuoteAmount      float64
	Route            [][]float64
	Stops            []stopSeed
}

type stopSeed struct {
	Sequence  int
	Location  string
	StopType  string
	Offset    time.Duration
	Latitude  float64
	Longitude float64
}

// Apply inserts sample data for manual testing. Customers are idempotent via
// ON CONFLICT; orders are only inserted into an empty orders table.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	emails := make(map[string]int64)
	for _, c := range sampleCustomers() {
		id, err := upsertCustomer(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.Email, err)
		}
		emails[c.Email] = id
	}

	var orderCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orderCount); err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if orderCount > 0 {
		return nil
	}

	repo := orderrepo.NewPostgres(pool, nil)
	now := time.Now().UTC()
	for _, o := range sampleOrders() {
		customerID, ok := emails[o.CustomerEmail]
		if !ok {
			return fmt.Errorf("seed order references unknown customer %s", o.CustomerEmail)
		}
		order, stops := o.build(customerID, now)
		if _, err := repo.Create(ctx, order, stops); err != nil {
			return fmt.Errorf("create order %s -> %s: %w", o.PickupLocation, o.DeliveryLocation, err)
		}
	}

	return nil
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) (int64, error) {
	const q = `
INSERT INTO customers (name, email, phone, address)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var id int64
	err := pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Address).Scan(&id)
	return id, err
}

func (o orderSeed) build(customerID int64, now time.Time) (domain.Order, []domain.Stop) {
	pickup := now.Add(o.PickupIn)
	delivery := pickup.Add(o.TransitTime)

	order := domain.Order{
		CustomerID:       customerID,
		PickupLocation:   o.PickupLocation,
		DeliveryLocation: o.DeliveryLocation,
		PickupDate:       pickup,
		DeliveryDate:     delivery,
		CargoType:        o.CargoType,
		Weight:           o.Weight,
		VehicleType:      strPtr(o.VehicleType),
		Carrier:          strPtr(o.Carrier),
		ReferenceNumber:  strPtr(o.ReferenceNumber),
		QuoteAmount:      o.QuoteAmount,
		Status:           o.Status,
	}
	if len(o.Route) > 0 {
		coords := make([]interface{}, 0, len(o.Route))
		for _, pair := range o.Route {
			coords = append(coords, []interface{}{pair[0], pair[1]})
		}
		order.RouteGeometry = map[string]interface{}{
			"type":        "LineString",
			"coordinates": coords,
		}
	}

	stops := make([]domain.Stop, 0, len(o.Stops))
	for _, s := range o.Stops {
		lat, lng := s.Latitude, s.Longitude
		stops = append(stops, domain.Stop{
			Sequence:      s.Sequence,
			Location:      s.Location,
			StopType:      s.StopType,
			ScheduledTime: pickup.Add(s.Offset),
			Latitude:      &lat,
			Longitude:     &lng,
		})
	}
	return order, stops
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func sampleCustomers() []customerSeed {
	return []customerSeed{
		{Name: "Acme Corporation", Email: "contact@acme.com", Phone: "+1-555-0101", Address: "123 Business St, New York, NY 10001"},
		{Name: "TechStart Inc", Email: "hello@techstart.com", Phone: "+1-555-0102", Address: "456 Innovation Ave, San Francisco, CA 94102"},
		{Name: "Global Logistics LLC", Email: "info@globallog.com", Phone: "+1-555-0103", Address: "789 Trade Blvd, Chicago, IL 60601"},
		{Name: "Midwest Manufacturing Co", Email: "sales@midwestmfg.com", Phone: "+1-555-0104", Address: "2500 Industrial Dr, Detroit, MI 48201"},
	}
}

func sampleOrders() []orderSeed {
	return []orderSeed{
		{
			CustomerEmail:    "contact@acme.com",
			PickupLocation:   "New York, NY",
			DeliveryLocation: "Philadelphia, PA",
			PickupIn:         24 * time.Hour,
			TransitTime:      6 * time.Hour,
			CargoType:        "Office Furniture",
			Weight:           3500,
			VehicleType:      "Dry Van",
			Carrier:          "FastFreight Inc",
			ReferenceNumber:  "REF-001",
			Status:           "pending",
			QuoteAmount:      1850,
			Route:            [][]float64{{-74.0060, 40.7128}, {-75.1652, 39.9526}},
			Stops: []stopSeed{
				{Sequence: 1, Location: "New York, NY", StopType: "pickup", Offset: 0, Latitude: 40.7128, Longitude: -74.0060},
				{Sequence: 2, Location: "Philadelphia, PA", StopType: "delivery", Offset: 6 * time.Hour, Latitude: 39.9526, Longitude: -75.1652},
			},
		},
		{
			CustomerEmail:    "info@globallog.com",
			PickupLocation:   "Chicago, IL",
			DeliveryLocation: "Detroit, MI",
			PickupIn:         48 * time.Hour,
			TransitTime:      8 * time.Hour,
			CargoType:        "Auto Parts",
			Weight:           12000,
			VehicleType:      "Flatbed",
			Carrier:          "Lakeshore Carriers",
			ReferenceNumber:  "REF-002",
			Status:           "in_progress",
			QuoteAmount:      3200,
			Route:            [][]float64{{-87.6298, 41.8781}, {-83.0458, 42.3314}},
			Stops: []stopSeed{
				{Sequence: 1, Location: "Chicago, IL", StopType: "pickup", Offset: 0, Latitude: 41.8781, Longitude: -87.6298},
				{Sequence: 2, Location: "Gary, IN", StopType: "pickup", Offset: 90 * time.Minute, Latitude: 41.5934, Longitude: -87.3464},
				{Sequence: 3, Location: "Detroit, MI", StopType: "delivery", Offset: 8 * time.Hour, Latitude: 42.3314, Longitude: -83.0458},
			},
		},
		{
			CustomerEmail:    "hello@techstart.com",
			PickupLocation:   "San Francisco, CA",
			DeliveryLocation: "Los Angeles, CA",
			PickupIn:         72 * time.Hour,
			TransitTime:      10 * time.Hour,
			CargoType:        "Server Equipment",
			Weight:           2200,
			VehicleType:      "Reefer",
			Carrier:          "Pacific Haul",
			ReferenceNumber:  "REF-003",
			Status:           "pending",
			QuoteAmount:      2750,
			Route:            [][]float64{{-122.4194, 37.7749}, {-118.2437, 34.0522}},
			Stops: []stopSeed{
				{Sequence: 1, Location: "San Francisco, CA", StopType: "pickup", Offset: 0, Latitude: 37.7749, Longitude: -122.4194},
				{Sequence: 2, Location: "Los Angeles, CA", StopType: "delivery", Offset: 10 * time.Hour, Latitude: 34.0522, Longitude: -118.2437},
			},
		},
	}
}
