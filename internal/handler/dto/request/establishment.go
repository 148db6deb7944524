package request

import (
	"strings"

	"courtgrid/internal/usecase/commands"
)

type CreateEstablishmentRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	OpenHour  int    `json:"open_hour" binding:"min=0,max=23"`
	CloseHour int    `json:"close_hour" binding:"required,min=1,max=48"`
}

func (r CreateEstablishmentRequest) ToCommand() commands.CreateEstablishmentRequest {
	return commands.CreateEstablishmentRequest{
		Name:      strings.TrimSpace(r.Name),
		Address:   strings.TrimSpace(r.Address),
		OpenHour:  r.OpenHour,
		CloseHour: r.CloseHour,
	}
}

type UpdateEstablishmentRequest struct {
	Name      string `json:"name" binding:"required"`
	OpenHour  int    `json:"open_hour" binding:"min=0,max=23"`
	CloseHour int    `json:"close_hour" binding:"required,min=1,max=48"`
}

func (r UpdateEstablishmentRequest) ToCommand() commands.UpdateEstablishmentRequest {
	return commands.UpdateEstablishmentRequest{
		Name:      strings.TrimSpace(r.Name),
		OpenHour:  r.OpenHour,
		CloseHour: r.CloseHour,
	}
}
