//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/handler/api"
	resdto "courtgrid/internal/handler/dto/response"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/queries"
	"courtgrid/tests/common/builder"
	"courtgrid/tests/common/httptest"
	"courtgrid/tests/common/testutil"
	commandsmock "courtgrid/tests/mock/commands"
	queriesmock "courtgrid/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock middleware behavior: inject the authenticated user
	withUser := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings", withUser, s.handler.CreateBooking)
	s.router.GET("/bookings/:id", s.handler.GetBooking)
	s.router.PATCH("/bookings/:id/move", s.handler.MoveBooking)
	s.router.PATCH("/bookings/:id/status", s.handler.UpdateStatus)
	s.router.DELETE("/bookings/:id", s.handler.CancelBooking)
	s.router.POST("/bookings/series", withUser, s.handler.CreateSeries)
	s.router.GET("/establishments/:id/grid", s.handler.DayGrid)
	s.router.GET("/resources/:id/max-duration", s.handler.MaxDuration)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateDTO()
	idempotencyKey := uuid.New().String()
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	s.Run("success: returns 201 Created for a fresh booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: false}, nil).
			Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers)

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.False(response.Replayed)
		s.Equal(view.ID, response.Booking.ID)
	})

	s.Run("success: returns 200 OK when the key replays a completed request", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil).
			Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers)

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
	})

	s.Run("error: 400 Bad Request without an Idempotency-Key header", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 409 Conflict when the slot is taken", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrBookingConflict).
			Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 422 Unprocessable when the slot falls outside operating hours", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrOutsideOperatingHours).
			Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name       string
			mutate     func(map[string]any)
			expectCode int
		}{
			{name: "missing resource_id", mutate: testutil.Field("resource_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing client_name", mutate: testutil.Field("client_name", nil), expectCode: http.StatusBadRequest},
			{name: "malformed date", mutate: testutil.Field("date", "01/03/2024"), expectCode: http.StatusBadRequest},
			{name: "duration below raster", mutate: testutil.Field("duration_min", 15), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "")

		var response queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 400 Bad Request for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestMoveBooking() {
	bookingID := uuid.New()
	reqBody := map[string]any{
		"resource_id": uuid.New().String(),
		"date":        "2024-03-02",
		"start":       "19:30",
	}

	s.Run("success: returns the moved booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockCommands.EXPECT().
			MoveBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(view, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+bookingID.String()+"/move", reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when the target slot is taken", func() {
		s.mockCommands.EXPECT().
			MoveBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(nil, commands.ErrBookingConflict).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+bookingID.String()+"/move", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 404 Not Found for an unknown booking", func() {
		s.mockCommands.EXPECT().
			MoveBooking(gomock.Any(), bookingID, gomock.Any()).
			Return(nil, commands.ErrBookingNotFound).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+bookingID.String()+"/move", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()

	s.Run("success: single cancellation reports one booking", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, gomock.Any(), gomock.Nil()).
			Return(1, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+bookingID.String(), nil, "")

		var response resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Cancelled)
	})

	s.Run("success: from_date scope forwards the cutoff", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, gomock.Any(), gomock.Not(gomock.Nil())).
			Return(3, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete,
			"/bookings/"+bookingID.String()+"?scope=from_date&from_date=2024-03-08", nil, "")

		var response resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(3, response.Cancelled)
	})

	s.Run("error: 400 Bad Request for malformed from_date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete,
			"/bookings/"+bookingID.String()+"?scope=from_date&from_date=08-03-2024", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestCreateSeries() {
	url := "/bookings/series"
	reqBody := map[string]any{
		"resource_id":  uuid.New().String(),
		"client_name":  "Ana López",
		"start_date":   "2024-03-01",
		"weeks":        4,
		"start":        "18:00",
		"duration_min": 90,
	}

	s.Run("success: returns the series with skipped dates", func() {
		result := &commands.CreateSeriesResult{
			SeriesID:     uuid.New(),
			BookingIDs:   []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
			SkippedDates: []string{"2024-03-15"},
		}
		s.mockCommands.EXPECT().
			CreateSeries(gomock.Any(), gomock.Any(), s.userID).
			Return(result, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CreateSeriesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Len(response.BookingIDs, 3)
		s.Equal([]string{"2024-03-15"}, response.SkippedDates)
	})

	s.Run("error: 409 Conflict when every week conflicts", func() {
		s.mockCommands.EXPECT().
			CreateSeries(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, commands.ErrSeriesFullyBooked).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 400 Bad Request when weeks exceeds the cap", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("weeks", 53))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestDayGrid() {
	establishmentID := uuid.New()
	date := slotgrid.NewDate(2024, 3, 1)

	s.Run("success: returns the day sheet", func() {
		grid := &queries.GridView{
			EstablishmentID: establishmentID,
			Date:            date.String(),
			OpenHour:        8,
			CloseHour:       26,
			Slots:           slotgrid.TimeSlots(8, 26),
		}
		s.mockQueries.EXPECT().DayGrid(gomock.Any(), establishmentID, date).Return(grid, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/establishments/"+establishmentID.String()+"/grid?date=2024-03-01", nil, "")

		var response queries.GridView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(grid.Slots, response.Slots)
	})

	s.Run("error: 400 Bad Request without a date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/establishments/"+establishmentID.String()+"/grid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestMaxDuration() {
	resourceID := uuid.New()
	date := slotgrid.NewDate(2024, 3, 1)

	s.Run("success: returns the longest bookable duration", func() {
		s.mockQueries.EXPECT().
			MaxDuration(gomock.Any(), resourceID, date, "18:00").
			Return(120, nil).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+resourceID.String()+"/max-duration?date=2024-03-01&start=18:00", nil, "")

		var response resdto.MaxDurationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(120, response.MaxDurationMin)
	})

	s.Run("error: 400 Bad Request when start is outside operating hours", func() {
		s.mockQueries.EXPECT().
			MaxDuration(gomock.Any(), resourceID, date, "03:00").
			Return(0, queries.ErrStartOutsideHours).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+resourceID.String()+"/max-duration?date=2024-03-01&start=03:00", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request without a start label", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+resourceID.String()+"/max-duration?date=2024-03-01", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
