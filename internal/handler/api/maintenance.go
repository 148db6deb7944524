package api

import (
	"errors"
	"net/http"

	reqdto "courtgrid/internal/handler/dto/request"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/handler/middleware"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	maintenanceCommands commands.MaintenanceCommands
	maintenanceQueries  queries.MaintenanceQueries
}

func NewMaintenanceHandler(
	maintenanceCommands commands.MaintenanceCommands,
	maintenanceQueries queries.MaintenanceQueries,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceCommands: maintenanceCommands,
		maintenanceQueries:  maintenanceQueries,
	}
}

// @Summary Report maintenance issue
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReportMaintenanceRequest true "Report request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /maintenance [post]
func (h *MaintenanceHandler) Report(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReportMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.maintenanceCommands.Report(c.Request.Context(), req.ResourceID, userID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrResourceNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid report data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Resolve report
// @Tags maintenance
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /maintenance/{id}/resolve [patch]
func (h *MaintenanceHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid report ID format",
		})
		return
	}

	if err := h.maintenanceCommands.Resolve(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrReportNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Report not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Open reports
// @Description Unresolved maintenance reports for an establishment
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param establishment_id query string true "Establishment ID"
// @Success 200 {array} queries.MaintenanceView
// @Failure 400 {object} map[string]string
// @Router /maintenance [get]
func (h *MaintenanceHandler) ListOpen(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Query("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing establishment_id",
		})
		return
	}

	views, err := h.maintenanceQueries.ListOpen(c.Request.Context(), establishmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}
