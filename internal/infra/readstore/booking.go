package readstore

import (
	"context"
	"fmt"
	"time"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/pgconv"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingReadStore serves both the query layer (views over the pool) and
// command validation (snapshots over an open transaction). Bind it to
// whichever DBTX the caller holds.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewColumns = `
	b.id, b.establishment_id, b.resource_id, r.name,
	b.client_name, b.client_phone, b.date, b.start_time,
	b.duration_min, b.end_min, b.status, b.price_cents, b.series_id,
	b.created_at, b.updated_at`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.id = $1`

	var (
		view queries.BookingView
		date time.Time
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.EstablishmentID, &view.ResourceID, &view.ResourceName,
		&view.ClientName, &view.ClientPhone, &date, &view.Start,
		&view.DurationMin, &view.EndMin, &view.Status, &view.PriceCents, &view.SeriesID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	view.Date = slotgrid.DateOf(date).String()
	return &view, nil
}

func (s *BookingReadStore) FindByEstablishment(
	ctx context.Context,
	establishmentID uuid.UUID,
	filter queries.ListFilter,
) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.id, b.resource_id, r.name, b.client_name, b.date, b.start_time,
		       b.duration_min, b.status, b.price_cents, b.created_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.establishment_id = $1`
	args := []any{establishmentID}

	if filter.From != nil {
		args = append(args, dateToTime(*filter.From))
		query += fmt.Sprintf(" AND b.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, dateToTime(*filter.To))
		query += fmt.Sprintf(" AND b.date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY b.date, b.start_time LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item queries.BookingListItem
			date time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.ResourceID, &item.ResourceName, &item.ClientName,
			&date, &item.Start, &item.DurationMin, &item.Status,
			&item.PriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = slotgrid.DateOf(date).String()
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

func (s *BookingReadStore) FindForGrid(
	ctx context.Context,
	establishmentID uuid.UUID,
	dates []slotgrid.Date,
) ([]queries.GridBookingRow, error) {
	const query = `
		SELECT b.id, b.resource_id, b.date, b.start_time, b.duration_min,
		       b.end_min, b.status, b.client_name
		FROM bookings b
		WHERE b.establishment_id = $1
		  AND b.date = ANY($2)
		  AND b.status <> 'cancelled'`

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = dateToTime(d)
	}

	rows, err := s.db.Query(ctx, query, establishmentID, days)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load grid bookings", err)
	}
	defer rows.Close()

	var result []queries.GridBookingRow
	for rows.Next() {
		var (
			row  queries.GridBookingRow
			date time.Time
		)
		if err := rows.Scan(
			&row.ID, &row.ResourceID, &date, &row.Start, &row.DurationMin,
			&row.EndMin, &row.Status, &row.ClientName,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan grid booking row", err)
		}
		row.Date = slotgrid.DateOf(date)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate grid booking rows", err)
	}
	return result, nil
}

func (s *BookingReadStore) FindActiveForResource(
	ctx context.Context,
	resourceID uuid.UUID,
	date slotgrid.Date,
) ([]slotgrid.Booking, error) {
	return s.RecordsForWindow(ctx, resourceID, date, false)
}

// RecordsForWindow loads the non-cancelled bookings of one resource on one
// calendar date as grid records. With lock set the rows are read FOR UPDATE,
// which is only valid inside a transaction.
func (s *BookingReadStore) RecordsForWindow(
	ctx context.Context,
	resourceID uuid.UUID,
	date slotgrid.Date,
	lock bool,
) ([]slotgrid.Booking, error) {
	query := `
		SELECT b.id, b.resource_id, b.date, b.start_time, b.duration_min, b.end_min
		FROM bookings b
		WHERE b.resource_id = $1 AND b.date = $2 AND b.status <> 'cancelled'`
	if lock {
		query += " FOR UPDATE"
	}

	rows, err := s.db.Query(ctx, query, resourceID, dateToTime(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load bookings for window", err)
	}
	defer rows.Close()

	var records []slotgrid.Booking
	for rows.Next() {
		var (
			rec slotgrid.Booking
			day time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.ResourceID, &day, &rec.Start, &rec.DurationMin, &rec.EndMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking record", err)
		}
		rec.Date = slotgrid.DateOf(day)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking records", err)
	}
	return records, nil
}

func (s *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, establishment_id, resource_id, client_name, client_phone,
		       date, start_time, duration_min, end_min, status, price_cents, series_id
		FROM bookings
		WHERE id = $1`

	var (
		snap shared.BookingSnapshot
		date time.Time
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.EstablishmentID, &snap.ResourceID,
		&snap.ClientName, &snap.ClientPhone,
		&date, &snap.Start, &snap.DurationMin, &snap.EndMin,
		&snap.Status, &snap.PriceCents, &snap.SeriesID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}
	snap.Date = slotgrid.DateOf(date)
	return &snap, nil
}

func (s *BookingReadStore) SeriesSnapshots(ctx context.Context, seriesID uuid.UUID) ([]shared.BookingSnapshot, error) {
	const query = `
		SELECT id, establishment_id, resource_id, client_name, client_phone,
		       date, start_time, duration_min, end_min, status, price_cents, series_id
		FROM bookings
		WHERE series_id = $1
		ORDER BY date`

	rows, err := s.db.Query(ctx, query, seriesID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load series members", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		var (
			snap shared.BookingSnapshot
			date time.Time
		)
		if err := rows.Scan(
			&snap.ID, &snap.EstablishmentID, &snap.ResourceID,
			&snap.ClientName, &snap.ClientPhone,
			&date, &snap.Start, &snap.DurationMin, &snap.EndMin,
			&snap.Status, &snap.PriceCents, &snap.SeriesID,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan series member", err)
		}
		snap.Date = slotgrid.DateOf(date)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate series members", err)
	}
	return snaps, nil
}

func dateToTime(d slotgrid.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
