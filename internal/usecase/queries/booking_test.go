//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubBookingViewRepo struct {
	gridRows      []queries.GridBookingRow
	gridDates     []slotgrid.Date
	activeRecords []slotgrid.Booking
	activeDate    slotgrid.Date
}

func (s *stubBookingViewRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return nil, nil
}

func (s *stubBookingViewRepo) FindByEstablishment(_ context.Context, _ uuid.UUID, _ queries.ListFilter) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (s *stubBookingViewRepo) FindForGrid(_ context.Context, _ uuid.UUID, dates []slotgrid.Date) ([]queries.GridBookingRow, error) {
	s.gridDates = dates
	return s.gridRows, nil
}

func (s *stubBookingViewRepo) FindActiveForResource(_ context.Context, _ uuid.UUID, date slotgrid.Date) ([]slotgrid.Booking, error) {
	s.activeDate = date
	return s.activeRecords, nil
}

type stubResourceViewRepo struct {
	byID    map[uuid.UUID]*queries.ResourceView
	byEstab []*queries.ResourceView
}

func (s *stubResourceViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	return s.byID[id], nil
}

func (s *stubResourceViewRepo) FindByEstablishment(_ context.Context, _ uuid.UUID, _ bool) ([]*queries.ResourceView, error) {
	return s.byEstab, nil
}

type stubEstablishmentViewRepo struct {
	view *queries.EstablishmentView
}

func (s *stubEstablishmentViewRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.EstablishmentView, error) {
	return s.view, nil
}

func (s *stubEstablishmentViewRepo) FindAll(_ context.Context) ([]*queries.EstablishmentView, error) {
	return []*queries.EstablishmentView{s.view}, nil
}

type BookingQueriesTestSuite struct {
	suite.Suite
	ctx            context.Context
	bookings       *stubBookingViewRepo
	resources      *stubResourceViewRepo
	establishments *stubEstablishmentViewRepo
	clock          *clock.MockClock
	queries        queries.BookingQueries

	estID    uuid.UUID
	courtID  uuid.UUID
	paddleID uuid.UUID
	gridDate slotgrid.Date
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.estID = uuid.New()
	s.courtID = uuid.New()
	s.paddleID = uuid.New()
	s.gridDate = slotgrid.NewDate(2024, 3, 1)

	s.bookings = &stubBookingViewRepo{}
	s.resources = &stubResourceViewRepo{byID: map[uuid.UUID]*queries.ResourceView{}}
	s.establishments = &stubEstablishmentViewRepo{}
	s.clock = clock.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewBookingQueries(s.bookings, s.resources, s.establishments, s.clock)
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) useEstablishment(openHour, closeHour int) {
	s.establishments.view = &queries.EstablishmentView{
		ID:        s.estID,
		Name:      "Club Norte",
		OpenHour:  openHour,
		CloseHour: closeHour,
	}
	s.resources.byEstab = []*queries.ResourceView{
		{ID: s.courtID, EstablishmentID: s.estID, Name: "Cancha 1", Kind: "court", PricePerHourCents: 120000, Active: true},
		{ID: s.paddleID, EstablishmentID: s.estID, Name: "Cancha 2", Kind: "court", PricePerHourCents: 100000, Active: true},
	}
	for _, r := range s.resources.byEstab {
		s.resources.byID[r.ID] = r
	}
}

func (s *BookingQueriesTestSuite) cellAt(grid *queries.GridView, resourceID uuid.UUID, label string) queries.GridCellView {
	for _, col := range grid.Resources {
		if col.ID != resourceID {
			continue
		}
		for _, cell := range col.Cells {
			if cell.Time == label {
				return cell
			}
		}
	}
	s.T().Fatalf("cell %s not found for resource %s", label, resourceID)
	return queries.GridCellView{}
}

func (s *BookingQueriesTestSuite) TestDayGrid() {
	s.Run("lays out bookings as spans within normal hours", func() {
		s.useEstablishment(8, 22)
		bookingID := uuid.New()
		s.bookings.gridRows = []queries.GridBookingRow{
			{
				ID:          bookingID,
				ResourceID:  s.courtID,
				Date:        s.gridDate,
				Start:       "18:00",
				DurationMin: 90,
				EndMin:      1170,
				Status:      "confirmed",
				ClientName:  "Juan Pérez",
			},
		}

		grid, err := s.queries.DayGrid(s.ctx, s.estID, s.gridDate)
		s.Require().NoError(err)

		s.Equal(s.gridDate.String(), grid.Date)
		s.Len(grid.Resources, 2)
		if diff := cmp.Diff([]slotgrid.Date{s.gridDate}, s.bookings.gridDates); diff != "" {
			s.Failf("unexpected grid dates", "(-want +got):\n%s", diff)
		}

		wantSlots := slotgrid.TimeSlots(8, 22)
		s.Len(grid.Slots, 28)
		if diff := cmp.Diff(wantSlots, grid.Slots); diff != "" {
			s.Failf("unexpected slot labels", "(-want +got):\n%s", diff)
		}

		head := s.cellAt(grid, s.courtID, "18:00")
		s.Require().NotNil(head.BookingID)
		s.Equal(bookingID, *head.BookingID)
		s.Equal("confirmed", *head.Status)
		s.Equal("Juan Pérez", *head.ClientName)
		s.Equal(3, head.Span)
		s.False(head.Continuation)

		for _, label := range []string{"18:30", "19:00"} {
			tail := s.cellAt(grid, s.courtID, label)
			s.Require().NotNil(tail.BookingID)
			s.Equal(bookingID, *tail.BookingID)
			s.True(tail.Continuation)
			s.Zero(tail.Span)
		}

		after := s.cellAt(grid, s.courtID, "19:30")
		s.Nil(after.BookingID)

		other := s.cellAt(grid, s.paddleID, "18:00")
		s.Nil(other.BookingID)
	})

	s.Run("marks elapsed slots relative to the clock", func() {
		s.useEstablishment(8, 22)
		s.bookings.gridRows = nil

		grid, err := s.queries.DayGrid(s.ctx, s.estID, s.gridDate)
		s.Require().NoError(err)

		s.True(s.cellAt(grid, s.courtID, "08:00").Past)
		s.True(s.cellAt(grid, s.courtID, "12:00").Past)
		s.False(s.cellAt(grid, s.courtID, "12:30").Past)
		s.False(s.cellAt(grid, s.courtID, "21:30").Past)
	})

	s.Run("attributes post-midnight slots to the next calendar date", func() {
		s.useEstablishment(8, 26)
		nextDate := s.gridDate.Next()
		lateID := uuid.New()
		s.bookings.gridRows = []queries.GridBookingRow{
			{
				ID:          lateID,
				ResourceID:  s.paddleID,
				Date:        nextDate,
				Start:       "00:30",
				DurationMin: 60,
				EndMin:      90,
				Status:      "pending",
				ClientName:  "Ana López",
			},
		}

		grid, err := s.queries.DayGrid(s.ctx, s.estID, s.gridDate)
		s.Require().NoError(err)

		if diff := cmp.Diff([]slotgrid.Date{s.gridDate, nextDate}, s.bookings.gridDates); diff != "" {
			s.Failf("unexpected grid dates", "(-want +got):\n%s", diff)
		}

		s.Len(grid.Slots, 36)
		s.Equal("08:00", grid.Slots[0])
		s.Equal("01:30", grid.Slots[len(grid.Slots)-1])

		evening := s.cellAt(grid, s.paddleID, "23:30")
		s.Equal(s.gridDate.String(), evening.Date)
		s.Nil(evening.BookingID)

		head := s.cellAt(grid, s.paddleID, "00:30")
		s.Equal(nextDate.String(), head.Date)
		s.Require().NotNil(head.BookingID)
		s.Equal(lateID, *head.BookingID)
		s.Equal(2, head.Span)
		s.False(head.Past)

		tail := s.cellAt(grid, s.paddleID, "01:00")
		s.True(tail.Continuation)

		// The same clock labels on the other column stay free.
		s.Nil(s.cellAt(grid, s.courtID, "00:30").BookingID)
	})
}

func (s *BookingQueriesTestSuite) TestMaxDuration() {
	s.Run("caps at the next booking on the resource", func() {
		s.useEstablishment(8, 23)
		s.bookings.activeRecords = []slotgrid.Booking{
			{ID: uuid.New(), ResourceID: s.courtID, Date: s.gridDate, Start: "20:00", DurationMin: 60},
		}

		minutes, err := s.queries.MaxDuration(s.ctx, s.courtID, s.gridDate, "18:00")
		s.Require().NoError(err)
		s.Equal(120, minutes)
	})

	s.Run("caps at closing when the rest of the day is free", func() {
		s.useEstablishment(8, 23)
		s.bookings.activeRecords = nil

		minutes, err := s.queries.MaxDuration(s.ctx, s.courtID, s.gridDate, "21:00")
		s.Require().NoError(err)
		s.Equal(120, minutes)
	})

	s.Run("resolves post-midnight starts against the spill-over date", func() {
		s.useEstablishment(8, 26)
		s.bookings.activeRecords = nil

		minutes, err := s.queries.MaxDuration(s.ctx, s.courtID, s.gridDate, "00:30")
		s.Require().NoError(err)
		s.Equal(90, minutes)
		s.True(s.bookings.activeDate.Equal(s.gridDate.Next()))
	})

	s.Run("error: rejects malformed start labels", func() {
		s.useEstablishment(8, 23)

		_, err := s.queries.MaxDuration(s.ctx, s.courtID, s.gridDate, "27:00")
		s.ErrorIs(err, queries.ErrInvalidStartLabel)
	})

	s.Run("error: rejects starts at or past closing", func() {
		s.useEstablishment(8, 23)

		_, err := s.queries.MaxDuration(s.ctx, s.courtID, s.gridDate, "23:00")
		s.ErrorIs(err, queries.ErrStartOutsideHours)
	})
}
