package response

import (
	"github.com/google/uuid"
)

// CreatedResponse is the minimal body returned by create endpoints that do
// not echo the full entity back.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
