package api

import (
	"errors"
	"net/http"
	"strconv"

	dombooking "courtgrid/internal/domain/booking"
	"courtgrid/internal/domain/slotgrid"
	reqdto "courtgrid/internal/handler/dto/request"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/handler/middleware"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Create a booking on a half-hour slot with an idempotency key
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), cmd, userID, idempotencyKey)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.CreateBookingResponse{
		Booking:  result.Booking,
		Replayed: result.IsReplayed,
	})
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List bookings
// @Description List bookings for an establishment with optional date and status filters
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param establishment_id query string true "Establishment ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} queries.BookingListItem
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Query("establishment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing establishment_id",
		})
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	items, err := h.bookingQueries.List(c.Request.Context(), establishmentID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Move booking
// @Description Move a booking to another resource, date, or start slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.MoveBookingRequest true "Move request"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/move [patch]
func (h *BookingHandler) MoveBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.MoveBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.bookingCommands.MoveBooking(c.Request.Context(), id, cmd)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Update booking status
// @Description Transition a booking along its lifecycle
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.bookingCommands.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel a booking; scope widens the cancellation over a series
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param scope query string false "single, from_date or all_pending" default(single)
// @Param from_date query string false "Cutoff for from_date scope (YYYY-MM-DD)"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	scope, err := dombooking.NewCancelScope(c.DefaultQuery("scope", "single"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cancel scope",
		})
		return
	}

	var fromDate *slotgrid.Date
	if raw := c.Query("from_date"); raw != "" {
		parsed, parseErr := slotgrid.ParseDate(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from_date format, expected YYYY-MM-DD",
			})
			return
		}
		fromDate = &parsed
	}

	cancelled, err := h.bookingCommands.CancelBooking(c.Request.Context(), id, scope, fromDate)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelBookingResponse{Cancelled: cancelled})
}

// @Summary Create recurring series
// @Description Book the same weekly slot for a number of weeks, skipping conflicts
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSeriesRequest true "Series request"
// @Success 201 {object} resdto.CreateSeriesResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/series [post]
func (h *BookingHandler) CreateSeries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateSeriesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	result, err := h.bookingCommands.CreateSeries(c.Request.Context(), cmd, userID)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateSeriesResponse{
		SeriesID:     result.SeriesID,
		BookingIDs:   result.BookingIDs,
		SkippedDates: result.SkippedDates,
	})
}

// @Summary Day grid
// @Description The day sheet: every active resource as a column, every slot as a row
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Establishment ID"
// @Param date query string true "Grid date (YYYY-MM-DD)"
// @Success 200 {object} queries.GridView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /establishments/{id}/grid [get]
func (h *BookingHandler) DayGrid(c *gin.Context) {
	establishmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid establishment ID format",
		})
		return
	}

	date, err := slotgrid.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	grid, err := h.bookingQueries.DayGrid(c.Request.Context(), establishmentID, date)
	if err != nil {
		h.renderBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

// @Summary Max available duration
// @Description Longest bookable duration from a start slot before the next booking or closing
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Grid date (YYYY-MM-DD)"
// @Param start query string true "Start slot label (HH:MM)"
// @Success 200 {object} resdto.MaxDurationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/max-duration [get]
func (h *BookingHandler) MaxDuration(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	date, err := slotgrid.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	start := c.Query("start")
	if start == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing start slot label",
		})
		return
	}

	maxMin, err := h.bookingQueries.MaxDuration(c.Request.Context(), resourceID, date, start)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidStartLabel),
			errors.Is(err, queries.ErrStartOutsideHours):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			h.renderBookingError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.MaxDurationResponse{MaxDurationMin: maxMin})
}

func (h *BookingHandler) renderBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrEstablishmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Establishment not found",
		})
	case errors.Is(err, commands.ErrResourceInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Resource is inactive",
		})
	case errors.Is(err, commands.ErrResourceMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Resource belongs to another establishment",
		})
	case errors.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot conflicts with an existing booking",
		})
	case errors.Is(err, commands.ErrSeriesFullyBooked):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Every date in the series conflicts",
		})
	case errors.Is(err, commands.ErrOutsideOperatingHours):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking falls outside operating hours",
		})
	case errors.Is(err, commands.ErrSlotInPast):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Slot has already elapsed",
		})
	case errors.Is(err, commands.ErrNotRecurring):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking does not belong to a series",
		})
	case errors.Is(err, commands.ErrInvalidSeriesLength):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Series length out of range",
		})
	case errors.Is(err, commands.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Idempotency key reused with a different request",
		})
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request is currently being processed",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("Idempotency-Key header required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}

func parseListFilter(c *gin.Context) (queries.ListFilter, error) {
	var filter queries.ListFilter

	if raw := c.Query("from"); raw != "" {
		d, err := slotgrid.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := slotgrid.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		filter.To = &d
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = int32(n)
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = int32(n)
	}

	return filter, nil
}
