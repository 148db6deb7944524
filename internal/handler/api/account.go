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

type AccountHandler struct {
	accountCommands commands.AccountCommands
	accountQueries  queries.AccountQueries
}

func NewAccountHandler(accountCommands commands.AccountCommands, accountQueries queries.AccountQueries) *AccountHandler {
	return &AccountHandler{
		accountCommands: accountCommands,
		accountQueries:  accountQueries,
	}
}

// @Summary Create client account
// @Description Open a running tab for a regular client
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAccountRequest true "Account request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req reqdto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.accountCommands.Create(c.Request.Context(), req.EstablishmentID, req.ClientName, req.ClientPhone)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEstablishmentNotFound), isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Establishment not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid account data",
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

// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} queries.AccountView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid account ID format",
		})
		return
	}

	view, err := h.accountQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
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

// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param establishment_id query string true "Establishment ID"
// @Success 200 {array} queries.AccountView
// @Failure 400 {object} map[string]string
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Query("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing establishment_id",
		})
		return
	}

	views, err := h.accountQueries.ListByEstablishment(c.Request.Context(), establishmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Account statement
// @Description Charges and payments in chronological order
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {array} queries.AccountEntryView
// @Failure 400 {object} map[string]string
// @Router /accounts/{id}/entries [get]
func (h *AccountHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid account ID format",
		})
		return
	}

	views, err := h.accountQueries.Statement(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Charge account
// @Description Add a debt entry to the client's tab
// @Tags accounts
// @Accept json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body reqdto.AccountChargeRequest true "Charge request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/charges [post]
func (h *AccountHandler) Charge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid account ID format",
		})
		return
	}

	var req reqdto.AccountChargeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.accountCommands.Charge(c.Request.Context(), id, req.AmountCents, req.Concept, req.BookingID); err != nil {
		h.renderAccountError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Pay into account
// @Description Settle part or all of the client's balance
// @Tags accounts
// @Accept json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body reqdto.AccountPaymentRequest true "Payment request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/payments [post]
func (h *AccountHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid account ID format",
		})
		return
	}

	var req reqdto.AccountPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.accountCommands.Pay(c.Request.Context(), id, req.AmountCents, req.Concept); err != nil {
		h.renderAccountError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) renderAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrAccountNotFound), isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Account not found",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid entry data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
