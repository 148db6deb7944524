package request

import (
	"courtgrid/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterUserRequest struct {
	Email           string     `json:"email" binding:"required,email"`
	Password        string     `json:"password" binding:"required,min=8"`
	Role            string     `json:"role" binding:"required,oneof=viewer operator admin"`
	EstablishmentID *uuid.UUID `json:"establishment_id,omitempty"`
}

func (r RegisterUserRequest) ToCommand() commands.RegisterUserRequest {
	return commands.RegisterUserRequest{
		Email:           r.Email,
		Password:        r.Password,
		Role:            r.Role,
		EstablishmentID: r.EstablishmentID,
	}
}
