package stop

import (
	"context"
	"errors"
	"io"
	"log"

	"fleetmanager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Stop, error) {
	const q = `
SELECT id, order_id, sequence, location, stop_type, scheduled_time,
       contact_person, contact_phone, latitude, longitude,
       status, actual_arrival_time, actual_departure_time, created_at, updated_at
FROM stops
WHERE id = $1
`
	var s domain.Stop
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.OrderID, &s.Sequence, &s.Location, &s.StopType, &s.ScheduledTime,
		&s.ContactPerson, &s.ContactPhone, &s.Latitude, &s.Longitude,
		&s.Status, &s.ActualArrivalTime, &s.ActualDepartureTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("stop repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	const q = `
UPDATE stops
SET status = $1, updated_at = now()
WHERE id = $2
`
	cmd, err := r.pool.Exec(ctx, q, status, id)
	if err != nil {
		r.logger.Printf("stop repo: update status id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
