package domain

import "time"

// Order is a shipment request from a customer. RouteGeometry is an opaque
// GeoJSON LineString, stored and returned verbatim, never interpreted.
type Order struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id"`

	PickupLocation   string    `json:"pickup_location"`
	DeliveryLocation string    `json:"delivery_location"`
	PickupDate       time.Time `json:"pickup_date"`
	DeliveryDate     time.Time `json:"delivery_date"`
	CargoType        string    `json:"cargo_type"`
	Weight           float64   `json:"weight"`
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

	QuoteAmount float64 `json:"quote_amount"`
	Status      string  `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty"`
	Stops    []Stop    `json:"stops"`
}
