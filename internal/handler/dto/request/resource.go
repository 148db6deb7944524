package request

import (
	"strings"

	"courtgrid/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	EstablishmentID   uuid.UUID `json:"establishment_id" binding:"required"`
	Name              string    `json:"name" binding:"required"`
	Kind              string    `json:"kind" binding:"required"`
	PricePerHourCents int64     `json:"price_per_hour_cents" binding:"min=0"`
}

func (r CreateResourceRequest) ToCommand() commands.CreateResourceRequest {
	return commands.CreateResourceRequest{
		EstablishmentID:   r.EstablishmentID,
		Name:              strings.TrimSpace(r.Name),
		Kind:              r.Kind,
		PricePerHourCents: r.PricePerHourCents,
	}
}

type UpdateResourceRequest struct {
	Name              string `json:"name" binding:"required"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"min=0"`
	Active            bool   `json:"active"`
}

func (r UpdateResourceRequest) ToCommand() commands.UpdateResourceRequest {
	return commands.UpdateResourceRequest{
		Name:              strings.TrimSpace(r.Name),
		PricePerHourCents: r.PricePerHourCents,
		Active:            r.Active,
	}
}
