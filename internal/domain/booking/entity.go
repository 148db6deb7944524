package booking

import (
	"time"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStart      = errs.New("invalid start time")
	ErrInvalidDuration   = errs.New("duration must be a positive multiple of the slot size")
	ErrEmptyClientName   = errs.New("client name required")
	ErrInvalidTransition = errs.New("invalid status transition")
	ErrNegativePrice     = errs.New("price cannot be negative")
)

// Booking reserves one resource for a contiguous stretch of slots on a
// calendar date. A booking that belongs to a weekly fixed series carries the
// series ID; standalone bookings have none.
type Booking struct {
	id              uuid.UUID
	establishmentID uuid.UUID
	resourceID      uuid.UUID
	clientName      string
	clientPhone     string
	date            slotgrid.Date
	start           string // "HH:MM"
	durationMin     int
	endMin          int
	status          Status
	priceCents      int64
	seriesID        *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(
	establishmentID, resourceID uuid.UUID,
	clientName, clientPhone string,
	date slotgrid.Date,
	start string,
	durationMin int,
	priceCents int64,
	seriesID *uuid.UUID,
) (*Booking, error) {
	startMin, ok := slotgrid.MinuteOfDay(start)
	if !ok {
		return nil, ErrInvalidStart
	}
	if durationMin <= 0 || durationMin%slotgrid.SlotMinutes != 0 {
		return nil, ErrInvalidDuration
	}
	if clientName == "" {
		return nil, ErrEmptyClientName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:              uuid.New(),
		establishmentID: establishmentID,
		resourceID:      resourceID,
		clientName:      clientName,
		clientPhone:     clientPhone,
		date:            date,
		start:           start,
		durationMin:     durationMin,
		endMin:          startMin + durationMin,
		status:          StatusPending,
		priceCents:      priceCents,
		seriesID:        seriesID,
	}, nil
}

func ReconstructBooking(
	id, establishmentID, resourceID uuid.UUID,
	clientName, clientPhone string,
	date slotgrid.Date,
	start string,
	durationMin, endMin int,
	status Status,
	priceCents int64,
	seriesID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		establishmentID: establishmentID,
		resourceID:      resourceID,
		clientName:      clientName,
		clientPhone:     clientPhone,
		date:            date,
		start:           start,
		durationMin:     durationMin,
		endMin:          endMin,
		status:          status,
		priceCents:      priceCents,
		seriesID:        seriesID,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) EstablishmentID() uuid.UUID { return b.establishmentID }
func (b *Booking) ResourceID() uuid.UUID      { return b.resourceID }
func (b *Booking) ClientName() string         { return b.clientName }
func (b *Booking) ClientPhone() string        { return b.clientPhone }
func (b *Booking) Date() slotgrid.Date        { return b.date }
func (b *Booking) Start() string              { return b.start }
func (b *Booking) DurationMin() int           { return b.durationMin }
func (b *Booking) EndMin() int                { return b.endMin }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) PriceCents() int64          { return b.priceCents }
func (b *Booking) SeriesID() *uuid.UUID       { return b.seriesID }
func (b *Booking) IsRecurring() bool          { return b.seriesID != nil }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status != StatusCancelled
}

// TransitionTo advances the lifecycle, rejecting transitions the status
// machine does not allow.
func (b *Booking) TransitionTo(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) Cancel() error {
	return b.TransitionTo(StatusCancelled)
}

// MoveTo relocates the booking to another resource, date and/or start time,
// keeping its duration. Only non-terminal bookings can move.
func (b *Booking) MoveTo(resourceID uuid.UUID, date slotgrid.Date, start string) error {
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	startMin, ok := slotgrid.MinuteOfDay(start)
	if !ok {
		return ErrInvalidStart
	}
	b.resourceID = resourceID
	b.date = date
	b.start = start
	b.endMin = startMin + b.durationMin
	return nil
}

// GridRecord projects the entity into the flat shape the slot grid computes
// over.
func (b *Booking) GridRecord() slotgrid.Booking {
	return slotgrid.Booking{
		ID:          b.id,
		ResourceID:  b.resourceID,
		Date:        b.date,
		Start:       b.start,
		DurationMin: b.durationMin,
		EndMin:      b.endMin,
		Cancelled:   b.status == StatusCancelled,
	}
}

// Span is the number of grid rows the booking occupies.
func (b *Booking) Span() int {
	return slotgrid.Span(b.durationMin)
}
