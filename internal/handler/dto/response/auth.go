package response

import (
	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
}

type RegisterUserResponse struct {
	ID uuid.UUID `json:"id"`
}
