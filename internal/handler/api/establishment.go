package api

import (
	"errors"
	"net/http"

	reqdto "courtgrid/internal/handler/dto/request"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstablishmentHandler struct {
	establishmentCommands commands.EstablishmentCommands
	establishmentQueries  queries.EstablishmentQueries
}

func NewEstablishmentHandler(
	establishmentCommands commands.EstablishmentCommands,
	establishmentQueries queries.EstablishmentQueries,
) *EstablishmentHandler {
	return &EstablishmentHandler{
		establishmentCommands: establishmentCommands,
		establishmentQueries:  establishmentQueries,
	}
}

// @Summary Create establishment
// @Description Register a facility with its daily operating window
// @Tags establishments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEstablishmentRequest true "Establishment request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /establishments [post]
func (h *EstablishmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.establishmentCommands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid operating window",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get establishment
// @Tags establishments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Establishment ID"
// @Success 200 {object} queries.EstablishmentView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /establishments/{id} [get]
func (h *EstablishmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid establishment ID format",
		})
		return
	}

	view, err := h.establishmentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Establishment not found",
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

// @Summary List establishments
// @Tags establishments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.EstablishmentView
// @Router /establishments [get]
func (h *EstablishmentHandler) List(c *gin.Context) {
	views, err := h.establishmentQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Update establishment
// @Description Rename or change the operating window; existing bookings are untouched
// @Tags establishments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Establishment ID"
// @Param request body reqdto.UpdateEstablishmentRequest true "Update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /establishments/{id} [put]
func (h *EstablishmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid establishment ID format",
		})
		return
	}

	var req reqdto.UpdateEstablishmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.establishmentCommands.Update(c.Request.Context(), id, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrEstablishmentNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Establishment not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid operating window",
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
