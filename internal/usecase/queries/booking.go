package queries

import (
	"context"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStartLabel = errs.New("start time is not a valid slot label")
	ErrStartOutsideHours = errs.New("start time falls outside operating hours")
)

// GridBookingRow is the flat projection the read store hands back for day
// sheet assembly. Cancelled bookings are filtered out at the query.
type GridBookingRow struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	Date        slotgrid.Date
	Start       string
	DurationMin int
	EndMin      int
	Status      string
	ClientName  string
}

func (r GridBookingRow) record() slotgrid.Booking {
	return slotgrid.Booking{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		Date:        r.Date,
		Start:       r.Start,
		DurationMin: r.DurationMin,
		EndMin:      r.EndMin,
	}
}

type ListFilter struct {
	From   *slotgrid.Date
	To     *slotgrid.Date
	Status *string
	Limit  int32
	Offset int32
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByEstablishment(ctx context.Context, establishmentID uuid.UUID, filter ListFilter) ([]*BookingListItem, error)
	FindForGrid(ctx context.Context, establishmentID uuid.UUID, dates []slotgrid.Date) ([]GridBookingRow, error)
	FindActiveForResource(ctx context.Context, resourceID uuid.UUID, date slotgrid.Date) ([]slotgrid.Booking, error)
}

type ResourceViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	FindByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeInactive bool) ([]*ResourceView, error)
}

type EstablishmentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EstablishmentView, error)
	FindAll(ctx context.Context) ([]*EstablishmentView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, establishmentID uuid.UUID, filter ListFilter) ([]*BookingListItem, error)
	DayGrid(ctx context.Context, establishmentID uuid.UUID, date slotgrid.Date) (*GridView, error)
	MaxDuration(ctx context.Context, resourceID uuid.UUID, date slotgrid.Date, start string) (int, error)
}

type bookingQueriesImpl struct {
	bookings       BookingViewRepo
	resources      ResourceViewRepo
	establishments EstablishmentViewRepo
	clock          clock.Clock
}

func NewBookingQueries(
	bookings BookingViewRepo,
	resources ResourceViewRepo,
	establishments EstablishmentViewRepo,
	clock clock.Clock,
) BookingQueries {
	return &bookingQueriesImpl{
		bookings:       bookings,
		resources:      resources,
		establishments: establishments,
		clock:          clock,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.bookings.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) List(ctx context.Context, establishmentID uuid.UUID, filter ListFilter) ([]*BookingListItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return q.bookings.FindByEstablishment(ctx, establishmentID, filter)
}

// DayGrid assembles the full day sheet for an establishment: every active
// resource as a column, every slot between opening and closing as a row.
// When closing runs past midnight the tail rows belong to the next calendar
// date, so bookings for both dates feed the same sheet.
func (q *bookingQueriesImpl) DayGrid(ctx context.Context, establishmentID uuid.UUID, date slotgrid.Date) (*GridView, error) {
	est, err := q.establishments.FindByID(ctx, establishmentID)
	if err != nil {
		return nil, err
	}

	resources, err := q.resources.FindByEstablishment(ctx, establishmentID, false)
	if err != nil {
		return nil, err
	}

	dates := []slotgrid.Date{date}
	if est.CloseHour > 24 {
		dates = append(dates, date.Next())
	}
	rows, err := q.bookings.FindForGrid(ctx, establishmentID, dates)
	if err != nil {
		return nil, err
	}

	byResource := make(map[uuid.UUID][]GridBookingRow, len(resources))
	for _, row := range rows {
		byResource[row.ResourceID] = append(byResource[row.ResourceID], row)
	}

	slots := slotgrid.TimeSlots(est.OpenHour, est.CloseHour)
	now := q.clock.Now()

	grid := &GridView{
		EstablishmentID: establishmentID,
		Date:            date.String(),
		OpenHour:        est.OpenHour,
		CloseHour:       est.CloseHour,
		Slots:           slots,
		Resources:       make([]GridResourceView, 0, len(resources)),
	}

	for _, res := range resources {
		column := GridResourceView{
			ID:                res.ID,
			Name:              res.Name,
			Kind:              res.Kind,
			PricePerHourCents: res.PricePerHourCents,
			Cells:             make([]GridCellView, 0, len(slots)),
		}

		resRows := byResource[res.ID]
		records := make([]slotgrid.Booking, 0, len(resRows))
		for _, row := range resRows {
			records = append(records, row.record())
		}
		rowByID := make(map[uuid.UUID]GridBookingRow, len(resRows))
		for _, row := range resRows {
			rowByID[row.ID] = row
		}

		for _, label := range slots {
			cell := GridCellView{
				Time: label,
				Date: slotgrid.SlotDate(label, date, est.OpenHour, est.CloseHour).String(),
				Past: slotgrid.IsSlotInPast(label, date, est.OpenHour, est.CloseHour, now),
			}

			if rec, ok := slotgrid.FindBookingForSlot(records, res.ID, label, date, est.OpenHour, est.CloseHour); ok {
				row := rowByID[rec.ID]
				id := row.ID
				status := row.Status
				client := row.ClientName
				cell.BookingID = &id
				cell.Status = &status
				cell.ClientName = &client

				if startsHere(rec, label, cell.Date) {
					cell.Span = slotgrid.Span(rec.DurationMin)
				} else {
					cell.Continuation = true
				}
			}

			column.Cells = append(column.Cells, cell)
		}

		grid.Resources = append(grid.Resources, column)
	}

	return grid, nil
}

// MaxDuration reports how many minutes a booking starting at the given slot
// could run before hitting the next booking or the closing time.
func (q *bookingQueriesImpl) MaxDuration(ctx context.Context, resourceID uuid.UUID, date slotgrid.Date, start string) (int, error) {
	res, err := q.resources.FindByID(ctx, resourceID)
	if err != nil {
		return 0, err
	}
	est, err := q.establishments.FindByID(ctx, res.EstablishmentID)
	if err != nil {
		return 0, err
	}

	startMin, ok := slotgrid.MinuteOfDay(start)
	if !ok {
		return 0, ErrInvalidStartLabel
	}

	effDate := slotgrid.SlotDate(start, date, est.OpenHour, est.CloseHour)
	closing := slotgrid.ClosingMinute(effDate, date, est.CloseHour)
	if startMin >= closing {
		return 0, ErrStartOutsideHours
	}

	records, err := q.bookings.FindActiveForResource(ctx, resourceID, effDate)
	if err != nil {
		return 0, err
	}

	return slotgrid.MaxAvailableDuration(resourceID, effDate, start, records, closing), nil
}

func startsHere(rec slotgrid.Booking, label, effectiveDate string) bool {
	slotMin, ok := slotgrid.MinuteOfDay(label)
	if !ok {
		return false
	}
	startMin, ok := slotgrid.MinuteOfDay(rec.Start)
	if !ok {
		return false
	}
	return slotMin == startMin && rec.Date.String() == effectiveDate
}
