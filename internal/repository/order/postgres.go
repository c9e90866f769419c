package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"fleetmanager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `
o.id, o.customer_id, o.pickup_location, o.delivery_location, o.pickup_date, o.delivery_date,
o.cargo_type, o.weight, o.dimensions, o.vehicle_type,
o.contact_person, o.contact_phone, o.contact_email, o.route_geometry,
o.bill_of_lading, o.container_number, o.seal_number, o.carrier,
o.reference_number, o.po_number, o.customer_reference,
o.special_instructions, o.internal_notes, o.quote_amount, o.status,
o.created_at, o.updated_at,
c.id, c.name, c.email, c.phone, c.address, c.created_at, c.updated_at`

const stopColumns = `
id, order_id, sequence, location, stop_type, scheduled_time,
contact_person, contact_phone, latitude, longitude,
status, actual_arrival_time, actual_departure_time, created_at, updated_at`

var sortColumns = map[string]string{
	"created_at": "o.created_at",
	"updated_at": "o.updated_at",
	"status":     "o.status",
	"id":         "o.id",
}

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order, stops []domain.Stop) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var customerID int64
	err = tx.QueryRow(ctx, `SELECT id FROM customers WHERE id = $1`, o.CustomerID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const insertOrder = `
INSERT INTO orders (
    customer_id, pickup_location, delivery_location, pickup_date, delivery_date,
    cargo_type, weight, dimensions, vehicle_type,
    contact_person, contact_phone, contact_email, route_geometry,
    bill_of_lading, container_number, seal_number, carrier,
    reference_number, po_number, customer_reference,
    special_instructions, internal_notes, quote_amount, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
RETURNING id
`
	var orderID int64
	err = tx.QueryRow(ctx, insertOrder,
		o.CustomerID, o.PickupLocation, o.DeliveryLocation, o.PickupDate, o.DeliveryDate,
		o.CargoType, o.Weight, o.Dimensions, o.VehicleType,
		o.ContactPerson, o.ContactPhone, o.ContactEmail, o.RouteGeometry,
		o.BillOfLading, o.ContainerNumber, o.SealNumber, o.Carrier,
		o.ReferenceNumber, o.PONumber, o.CustomerReference,
		o.SpecialInstructions, o.InternalNotes, o.QuoteAmount, o.Status,
	).Scan(&orderID)
	if err != nil {
		r.logger.Printf("order repo: insert order customer_id=%d error=%v", o.CustomerID, err)
		return nil, err
	}

	if err := insertStops(ctx, tx, orderID, stops); err != nil {
		r.logger.Printf("order repo: insert stops order_id=%d error=%v", orderID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customers c ON c.id = o.customer_id
WHERE o.id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	stopsByOrder, err := r.fetchStops(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Stops = stopsByOrder[o.ID]
	if o.Stops == nil {
		o.Stops = []domain.Stop{}
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, int64, error) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(o.pickup_location ILIKE $%d OR o.delivery_location ILIKE $%d OR o.cargo_type ILIKE $%d OR o.reference_number ILIKE $%d)",
			n, n, n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.CustomerID != 0 {
		args = append(args, f.CustomerID)
		conds = append(conds, fmt.Sprintf("o.customer_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM orders o " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Printf("order repo: count error=%v", err)
		return nil, 0, err
	}

	sortCol, ok := sortColumns[f.SortBy]
	if !ok {
		return nil, 0, domain.Invalid("unsupported sort field %q", f.SortBy)
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	args = append(args, f.Offset, f.Limit)
	listQuery := fmt.Sprintf(`
SELECT %s
FROM orders o
JOIN customers c ON c.id = o.customer_id
%s
ORDER BY %s %s
OFFSET $%d LIMIT $%d
`, orderColumns, where, sortCol, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Order
	var ids []int64
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, 0, err
	}

	stopsByOrder, err := r.fetchStops(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range result {
		result[i].Stops = stopsByOrder[result[i].ID]
		if result[i].Stops == nil {
			result[i].Stops = []domain.Stop{}
		}
	}

	return result, total, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, p Patch) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the row so concurrent stop-set replacements serialize.
	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	sets, args := buildSets(p)
	if len(sets) > 0 || p.Stops != nil {
		sets = append(sets, "updated_at = now()")
		args = append(args, id)
		q := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			r.logger.Printf("order repo: update id=%d error=%v", id, err)
			return nil, err
		}
	}

	if p.Stops != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM stops WHERE order_id = $1`, id); err != nil {
			return nil, err
		}
		if err := insertStops(ctx, tx, id, *p.Stops); err != nil {
			r.logger.Printf("order repo: replace stops order_id=%d error=%v", id, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	// Stops go with the order via the declared FK cascade.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchStops(ctx context.Context, orderIDs []int64) (map[int64][]domain.Stop, error) {
	if len(orderIDs) == 0 {
		return map[int64][]domain.Stop{}, nil
	}
	const q = `
SELECT ` + stopColumns + `
FROM stops
WHERE order_id = ANY($1)
ORDER BY order_id, sequence, id
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		r.logger.Printf("order repo: fetch stops error=%v", err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.Stop)
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(
			&s.ID, &s.OrderID, &s.Sequence, &s.Location, &s.StopType, &s.ScheduledTime,
			&s.ContactPerson, &s.ContactPhone, &s.Latitude, &s.Longitude,
			&s.Status, &s.ActualArrivalTime, &s.ActualDepartureTime, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out[s.OrderID] = append(out[s.OrderID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func insertStops(ctx context.Context, tx pgx.Tx, orderID int64, stops []domain.Stop) error {
	const q = `
INSERT INTO stops (order_id, sequence, location, stop_type, scheduled_time,
                   contact_person, contact_phone, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	for _, s := range stops {
		if _, err := tx.Exec(ctx, q,
			orderID, s.Sequence, s.Location, s.StopType, s.ScheduledTime,
			s.ContactPerson, s.ContactPhone, s.Latitude, s.Longitude,
		); err != nil {
			return err
		}
	}
	return nil
}

func buildSets(p Patch) ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.PickupLocation != nil {
		add("pickup_location", *p.PickupLocation)
	}
	if p.DeliveryLocation != nil {
		add("delivery_location", *p.DeliveryLocation)
	}
	if p.PickupDate != nil {
		add("pickup_date", *p.PickupDate)
	}
	if p.DeliveryDate != nil {
		add("delivery_date", *p.DeliveryDate)
	}
	if p.CargoType != nil {
		add("cargo_type", *p.CargoType)
	}
	if p.Weight != nil {
		add("weight", *p.Weight)
	}
	if p.Dimensions != nil {
		add("dimensions", *p.Dimensions)
	}
	if p.VehicleType != nil {
		add("vehicle_type", *p.VehicleType)
	}
	if p.ContactPerson != nil {
		add("contact_person", *p.ContactPerson)
	}
	if p.ContactPhone != nil {
		add("contact_phone", *p.ContactPhone)
	}
	if p.ContactEmail != nil {
		add("contact_email", *p.ContactEmail)
	}
	if p.RouteGeometry != nil {
		add("route_geometry", p.RouteGeometry)
	}
	if p.BillOfLading != nil {
		add("bill_of_lading", *p.BillOfLading)
	}
	if p.ContainerNumber != nil {
		add("container_number", *p.ContainerNumber)
	}
	if p.SealNumber != nil {
		add("seal_number", *p.SealNumber)
	}
	if p.Carrier != nil {
		add("carrier", *p.Carrier)
	}
	if p.ReferenceNumber != nil {
		add("reference_number", *p.ReferenceNumber)
	}
	if p.PONumber != nil {
		add("po_number", *p.PONumber)
	}
	if p.CustomerReference != nil {
		add("customer_reference", *p.CustomerReference)
	}
	if p.SpecialInstructions != nil {
		add("special_instructions", *p.SpecialInstructions)
	}
	if p.InternalNotes != nil {
		add("internal_notes", *p.InternalNotes)
	}
	if p.QuoteAmount != nil {
		add("quote_amount", *p.QuoteAmount)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}

	return sets, args
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var c domain.Customer
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.PickupLocation, &o.DeliveryLocation, &o.PickupDate, &o.DeliveryDate,
		&o.CargoType, &o.Weight, &o.Dimensions, &o.VehicleType,
		&o.ContactPerson, &o.ContactPhone, &o.ContactEmail, &o.RouteGeometry,
		&o.BillOfLading, &o.ContainerNumber, &o.SealNumber, &o.Carrier,
		&o.ReferenceNumber, &o.PONumber, &o.CustomerReference,
		&o.SpecialInstructions, &o.InternalNotes, &o.QuoteAmount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Customer = &c
	return &o, nil
}
