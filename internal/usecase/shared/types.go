package shared

import (
	"time"

	"courtgrid/internal/domain/slotgrid"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS
// separation).

type ResourceSnapshot struct {
	ID                uuid.UUID
	EstablishmentID   uuid.UUID
	Name              string
	Kind              string
	PricePerHourCents int64
	Active            bool
}

type EstablishmentSnapshot struct {
	ID        uuid.UUID
	Name      string
	Address   string
	OpenHour  int
	CloseHour int
}

type BookingSnapshot struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	ResourceID      uuid.UUID
	ClientName      string
	ClientPhone     string
	Date            slotgrid.Date
	Start           string
	DurationMin     int
	EndMin          int
	Status          string
	PriceCents      int64
	SeriesID        *uuid.UUID
}

// GridRecord projects the snapshot into the slot grid's flat shape.
func (b BookingSnapshot) GridRecord() slotgrid.Booking {
	return slotgrid.Booking{
		ID:          b.ID,
		ResourceID:  b.ResourceID,
		Date:        b.Date,
		Start:       b.Start,
		DurationMin: b.DurationMin,
		EndMin:      b.EndMin,
		Cancelled:   b.Status == "cancelled",
	}
}

type SessionSnapshot struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	OpenedBy        uuid.UUID
	OpeningCents    int64
	ClosingCents    *int64
	OpenedAt        time.Time
	ClosedAt        *time.Time
}

type AccountSnapshot struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	ClientName      string
	ClientPhone     string
	BalanceCents    int64
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
