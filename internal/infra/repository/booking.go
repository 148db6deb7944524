package repository

import (
	"context"

	"courtgrid/internal/domain/booking"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, establishment_id, resource_id, client_name, client_phone,
			date, start_time, duration_min, end_min, status, price_cents, series_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		b.ID(), b.EstablishmentID(), b.ResourceID(), b.ClientName(), b.ClientPhone(),
		dateToTime(b.Date()), b.Start(), b.DurationMin(), b.EndMin(),
		b.Status().String(), b.PriceCents(), b.SeriesID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET resource_id = $2,
		    date = $3,
		    start_time = $4,
		    duration_min = $5,
		    end_min = $6,
		    status = $7,
		    price_cents = $8,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		b.ID(), b.ResourceID(), dateToTime(b.Date()), b.Start(),
		b.DurationMin(), b.EndMin(), b.Status().String(), b.PriceCents(),
	)
	if err != nil {
		return classify("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) CancelByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) error {
	const query = `
		UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE id = ANY($1) AND status NOT IN ('cancelled', 'completed', 'no_show')`

	if _, err := tx.Exec(ctx, query, ids); err != nil {
		return classify("failed to cancel bookings", err)
	}
	return nil
}
