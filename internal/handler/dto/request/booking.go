package request

import (
	"strings"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID  uuid.UUID `json:"resource_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientPhone string    `json:"client_phone"`
	Date        string    `json:"date" binding:"required"`
	Start       string    `json:"start" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"required,min=30"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
}

func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, error) {
	date, err := slotgrid.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		ResourceID:  r.ResourceID,
		ClientName:  strings.TrimSpace(r.ClientName),
		ClientPhone: strings.TrimSpace(r.ClientPhone),
		Date:        date,
		Start:       r.Start,
		DurationMin: r.DurationMin,
		PriceCents:  r.PriceCents,
	}, nil
}

type MoveBookingRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Start      string    `json:"start" binding:"required"`
}

func (r MoveBookingRequest) ToCommand() (commands.MoveBookingRequest, error) {
	date, err := slotgrid.ParseDate(r.Date)
	if err != nil {
		return commands.MoveBookingRequest{}, err
	}
	return commands.MoveBookingRequest{
		ResourceID: r.ResourceID,
		Date:       date,
		Start:      r.Start,
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateSeriesRequest struct {
	ResourceID  uuid.UUID `json:"resource_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientPhone string    `json:"client_phone"`
	StartDate   string    `json:"start_date" binding:"required"`
	Weeks       int       `json:"weeks" binding:"required,min=1,max=52"`
	Start       string    `json:"start" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"required,min=30"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
}

func (r CreateSeriesRequest) ToCommand() (commands.CreateSeriesRequest, error) {
	startDate, err := slotgrid.ParseDate(r.StartDate)
	if err != nil {
		return commands.CreateSeriesRequest{}, err
	}
	return commands.CreateSeriesRequest{
		ResourceID:  r.ResourceID,
		ClientName:  strings.TrimSpace(r.ClientName),
		ClientPhone: strings.TrimSpace(r.ClientPhone),
		StartDate:   startDate,
		Weeks:       r.Weeks,
		Start:       r.Start,
		DurationMin: r.DurationMin,
		PriceCents:  r.PriceCents,
	}, nil
}
