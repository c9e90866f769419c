package domain

import "time"

// Stop is one pickup or delivery leg within an order's route. Stops exist
// only as part of their parent order.
type Stop struct {
	ID      int64 `json:"id"`
	OrderID int64 `json:"order_id"`

	Sequence      int       `json:"sequence"`
	Location      string    `json:"location"`
	StopType      string    `json:"stop_type"`
	ScheduledTime time.Time `json:"scheduled_time"`

	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Status              string     `json:"status"`
	ActualArrivalTime   *time.Time `json:"actual_arrival_time"`
	ActualDepartureTime *time.Time `json:"actual_departure_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
