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

type CashboxHandler struct {
	registerCommands commands.RegisterCommands
	registerQueries  queries.RegisterQueries
}

func NewCashboxHandler(registerCommands commands.RegisterCommands, registerQueries queries.RegisterQueries) *CashboxHandler {
	return &CashboxHandler{
		registerCommands: registerCommands,
		registerQueries:  registerQueries,
	}
}

// @Summary Open register
// @Description Open the cash register session for the day
// @Tags cashbox
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OpenRegisterRequest true "Open request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /register/open [post]
func (h *CashboxHandler) Open(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.registerCommands.Open(c.Request.Context(), req.EstablishmentID, userID, req.OpeningCents)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRegisterAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Register session already open",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid opening amount",
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

// @Summary Close register
// @Description Close the open session with the counted cash amount
// @Tags cashbox
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.CloseRegisterRequest true "Close request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /register/close [post]
func (h *CashboxHandler) Close(c *gin.Context) {
	var req reqdto.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.registerCommands.Close(c.Request.Context(), req.EstablishmentID, req.CountedCents); err != nil {
		switch {
		case errors.Is(err, commands.ErrNoOpenRegister):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No open register session",
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

// @Summary Add movement
// @Description Record an income or expense in the open session
// @Tags cashbox
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddMovementRequest true "Movement request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /register/movements [post]
func (h *CashboxHandler) AddMovement(c *gin.Context) {
	var req reqdto.AddMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.registerCommands.AddMovement(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoOpenRegister):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No open register session",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid movement data",
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

// @Summary Current session
// @Description The open register session with running income, expense, and expected cash
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Param establishment_id query string true "Establishment ID"
// @Success 200 {object} queries.RegisterSessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /register/current [get]
func (h *CashboxHandler) Current(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Query("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing establishment_id",
		})
		return
	}

	view, err := h.registerQueries.CurrentSession(c.Request.Context(), establishmentID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No open register session",
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

// @Summary Get session
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.RegisterSessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /register/sessions/{id} [get]
func (h *CashboxHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	view, err := h.registerQueries.GetSession(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Session not found",
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

// @Summary Session movements
// @Tags cashbox
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {array} queries.MovementView
// @Failure 400 {object} map[string]string
// @Router /register/sessions/{id}/movements [get]
func (h *CashboxHandler) Movements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	views, err := h.registerQueries.Movements(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}
