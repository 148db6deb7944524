package request

import (
	"github.com/google/uuid"
)

type ReportMaintenanceRequest struct {
	ResourceID  uuid.UUID `json:"resource_id" binding:"required"`
	Description string    `json:"description" binding:"required"`
}
