//go:build unit || e2e

package builder

import (
	"time"

	"courtgrid/internal/domain/booking"
	"courtgrid/internal/domain/slotgrid"
	reqdto "courtgrid/internal/handler/dto/request"
	"courtgrid/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder assembles valid booking input that tests mutate per case.
type BookingBuilder struct {
	establishmentID uuid.UUID
	resourceID      uuid.UUID
	clientName      string
	clientPhone     string
	date            slotgrid.Date
	start           string
	durationMin     int
	priceCents      int64
	seriesID        *uuid.UUID
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		establishmentID: uuid.New(),
		resourceID:      uuid.New(),
		clientName:      "Juan Pérez",
		clientPhone:     "+54 11 5555-0101",
		date:            slotgrid.NewDate(2024, 3, 1),
		start:           "18:00",
		durationMin:     60,
		priceCents:      120000,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithResourceID(id uuid.UUID) *BookingBuilder {
	b.resourceID = id
	return b
}

func (b *BookingBuilder) WithClientName(name string) *BookingBuilder {
	b.clientName = name
	return b
}

func (b *BookingBuilder) WithDate(d slotgrid.Date) *BookingBuilder {
	b.date = d
	return b
}

func (b *BookingBuilder) WithStart(start string) *BookingBuilder {
	b.start = start
	return b
}

func (b *BookingBuilder) WithDuration(min int) *BookingBuilder {
	b.durationMin = min
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.priceCents = cents
	return b
}

func (b *BookingBuilder) WithSeriesID(id uuid.UUID) *BookingBuilder {
	b.seriesID = &id
	return b
}

func (b *BookingBuilder) BuildCreateDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID:  b.resourceID,
		ClientName:  b.clientName,
		ClientPhone: b.clientPhone,
		Date:        b.date.String(),
		Start:       b.start,
		DurationMin: b.durationMin,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Now()
	startMin, _ := slotgrid.MinuteOfDay(b.start)
	return &queries.BookingView{
		ID:              uuid.New(),
		EstablishmentID: b.establishmentID,
		ResourceID:      b.resourceID,
		ResourceName:    "Cancha 1",
		ClientName:      b.clientName,
		ClientPhone:     b.clientPhone,
		Date:            b.date.String(),
		Start:           b.start,
		DurationMin:     b.durationMin,
		EndMin:          startMin + b.durationMin,
		Status:          "pending",
		PriceCents:      b.priceCents,
		SeriesID:        b.seriesID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(
		b.establishmentID,
		b.resourceID,
		b.clientName,
		b.clientPhone,
		b.date,
		b.start,
		b.durationMin,
		b.priceCents,
		b.seriesID,
	)
}
