package api

import (
	"errors"
	"net/http"

	reqdto "courtgrid/internal/handler/dto/request"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/infra"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceCommands commands.ResourceCommands
	resourceQueries  queries.ResourceQueries
}

func NewResourceHandler(resourceCommands commands.ResourceCommands, resourceQueries queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{
		resourceCommands: resourceCommands,
		resourceQueries:  resourceQueries,
	}
}

// @Summary Create resource
// @Description Register a court or amenity under an establishment
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.resourceCommands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEstablishmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Establishment not found",
			})
		case infra.IsKind(err, infra.KindDuplicateKey):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Resource name already in use",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid resource data",
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

// @Summary Get resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.resourceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List resources
// @Description List an establishment's resources, courts before amenities
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param establishment_id query string true "Establishment ID"
// @Param include_inactive query bool false "Include deactivated resources"
// @Success 200 {array} queries.ResourceView
// @Failure 400 {object} map[string]string
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Query("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing establishment_id",
		})
		return
	}

	includeInactive := c.Query("include_inactive") == "true"

	views, err := h.resourceQueries.ListByEstablishment(c.Request.Context(), establishmentID, includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Update resource
// @Tags resources
// @Accept json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var req reqdto.UpdateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.resourceCommands.Update(c.Request.Context(), id, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrResourceNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid resource data",
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

// @Summary Deactivate resource
// @Description Take a resource off the grid without touching its history
// @Tags resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	if err := h.resourceCommands.Deactivate(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrResourceNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
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
