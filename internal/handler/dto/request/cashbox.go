package request

import (
	"strings"

	"courtgrid/internal/usecase/commands"

	"github.com/google/uuid"
)

type OpenRegisterRequest struct {
	EstablishmentID uuid.UUID `json:"establishment_id" binding:"required"`
	OpeningCents    int64     `json:"opening_cents" binding:"min=0"`
}

type CloseRegisterRequest struct {
	EstablishmentID uuid.UUID `json:"establishment_id" binding:"required"`
	CountedCents    int64     `json:"counted_cents" binding:"min=0"`
}

type AddMovementRequest struct {
	EstablishmentID uuid.UUID  `json:"establishment_id" binding:"required"`
	Type            string     `json:"type" binding:"required,oneof=income expense"`
	Concept         string     `json:"concept" binding:"required"`
	AmountCents     int64      `json:"amount_cents" binding:"required,min=1"`
	Method          string     `json:"method" binding:"required,oneof=cash card transfer"`
	BookingID       *uuid.UUID `json:"booking_id,omitempty"`
}

func (r AddMovementRequest) ToCommand() commands.AddMovementRequest {
	return commands.AddMovementRequest{
		EstablishmentID: r.EstablishmentID,
		Type:            r.Type,
		Concept:         strings.TrimSpace(r.Concept),
		AmountCents:     r.AmountCents,
		Method:          r.Method,
		BookingID:       r.BookingID,
	}
}

type CreateAccountRequest struct {
	EstablishmentID uuid.UUID `json:"establishment_id" binding:"required"`
	ClientName      string    `json:"client_name" binding:"required"`
	ClientPhone     string    `json:"client_phone"`
}

type AccountChargeRequest struct {
	AmountCents int64      `json:"amount_cents" binding:"required,min=1"`
	Concept     string     `json:"concept" binding:"required"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
}

type AccountPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Concept     string `json:"concept" binding:"required"`
}
