//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	dombooking "courtgrid/internal/domain/booking"
	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/usecase/commands"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubCommandReads struct {
	resources      map[uuid.UUID]*shared.ResourceSnapshot
	establishments map[uuid.UUID]*shared.EstablishmentSnapshot
	bookings       map[uuid.UUID]*shared.BookingSnapshot
	series         map[uuid.UUID][]shared.BookingSnapshot
	// windows holds the existing bookings per calendar date that conflict
	// checks read inside the transaction.
	windows map[string][]slotgrid.Booking
}

func newStubCommandReads() *stubCommandReads {
	return &stubCommandReads{
		resources:      map[uuid.UUID]*shared.ResourceSnapshot{},
		establishments: map[uuid.UUID]*shared.EstablishmentSnapshot{},
		bookings:       map[uuid.UUID]*shared.BookingSnapshot{},
		series:         map[uuid.UUID][]shared.BookingSnapshot{},
		windows:        map[string][]slotgrid.Booking{},
	}
}

func (r *stubCommandReads) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	if res, ok := r.resources[id]; ok {
		return res, nil
	}
	return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
}

func (r *stubCommandReads) EstablishmentByID(_ context.Context, id uuid.UUID) (*shared.EstablishmentSnapshot, error) {
	if est, ok := r.establishments[id]; ok {
		return est, nil
	}
	return nil, infra.WrapRepoErr("establishment not found", nil, infra.KindNotFound)
}

func (r *stubCommandReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *stubCommandReads) BookingsForWindow(_ context.Context, _ uuid.UUID, date slotgrid.Date, _ bool) ([]slotgrid.Booking, error) {
	return r.windows[date.String()], nil
}

func (r *stubCommandReads) SeriesMembers(_ context.Context, seriesID uuid.UUID) ([]shared.BookingSnapshot, error) {
	return r.series[seriesID], nil
}

func (r *stubCommandReads) OpenRegister(_ context.Context, _ uuid.UUID) (*shared.SessionSnapshot, error) {
	return nil, infra.WrapRepoErr("no open session", nil, infra.KindNotFound)
}

func (r *stubCommandReads) AccountByID(_ context.Context, _ uuid.UUID) (*shared.AccountSnapshot, error) {
	return nil, infra.WrapRepoErr("account not found", nil, infra.KindNotFound)
}

func (r *stubCommandReads) IdempotencyByKey(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
	return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
}

type stubBookingRepo struct {
	created      []*dombooking.Booking
	updated      []*dombooking.Booking
	cancelledIDs []uuid.UUID
}

func (r *stubBookingRepo) Create(_ context.Context, _ db.DBTX, b *dombooking.Booking) (uuid.UUID, error) {
	r.created = append(r.created, b)
	return b.ID(), nil
}

func (r *stubBookingRepo) Update(_ context.Context, _ db.DBTX, b *dombooking.Booking) error {
	r.updated = append(r.updated, b)
	return nil
}

func (r *stubBookingRepo) CancelByIDs(_ context.Context, _ db.DBTX, ids []uuid.UUID) error {
	r.cancelledIDs = append(r.cancelledIDs, ids...)
	return nil
}

type stubTx struct {
	bookings *stubBookingRepo
	reads    *stubCommandReads
}

func (t *stubTx) Bookings() shared.BookingRepository             { return t.bookings }
func (t *stubTx) Resources() shared.ResourceRepository           { return nil }
func (t *stubTx) Establishments() shared.EstablishmentRepository { return nil }
func (t *stubTx) Registers() shared.RegisterRepository           { return nil }
func (t *stubTx) Accounts() shared.AccountRepository             { return nil }
func (t *stubTx) Maintenance() shared.MaintenanceRepository      { return nil }
func (t *stubTx) Idempotency() shared.IdempotencyRepository      { return nil }
func (t *stubTx) Users() shared.UserRepository                   { return nil }
func (t *stubTx) Reads() shared.CommandReads                     { return t.reads }
func (t *stubTx) DB() db.DBTX                                    { return nil }

type stubUnitOfWork struct {
	tx *stubTx
}

func (u *stubUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUnitOfWork) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type recordedEvent struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	p.events = append(p.events, recordedEvent{topic: topic, payload: payload})
	return nil
}

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx       context.Context
	reads     *stubCommandReads
	repo      *stubBookingRepo
	publisher *recordingPublisher
	clock     *clock.MockClock
	commands  commands.BookingCommands

	estID      uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.estID = uuid.New()
	s.resourceID = uuid.New()
	s.userID = uuid.New()

	s.reads = newStubCommandReads()
	s.repo = &stubBookingRepo{}
	s.publisher = &recordingPublisher{}
	s.clock = clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	uow := &stubUnitOfWork{tx: &stubTx{bookings: s.repo, reads: s.reads}}
	s.commands = commands.NewBookingUseCase(uow, nil, s.publisher, s.clock)

	s.reads.resources[s.resourceID] = &shared.ResourceSnapshot{
		ID:                s.resourceID,
		EstablishmentID:   s.estID,
		Name:              "Cancha 1",
		Kind:              "court",
		PricePerHourCents: 120000,
		Active:            true,
	}
	s.reads.establishments[s.estID] = &shared.EstablishmentSnapshot{
		ID:        s.estID,
		Name:      "Club Norte",
		OpenHour:  8,
		CloseHour: 23,
	}
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) member(seriesID uuid.UUID, date slotgrid.Date, status string) shared.BookingSnapshot {
	return shared.BookingSnapshot{
		ID:              uuid.New(),
		EstablishmentID: s.estID,
		ResourceID:      s.resourceID,
		ClientName:      "Juan Pérez",
		Date:            date,
		Start:           "18:00",
		DurationMin:     60,
		EndMin:          19 * 60,
		Status:          status,
		SeriesID:        &seriesID,
	}
}

func (s *BookingCommandsTestSuite) seedSeries() (addressed shared.BookingSnapshot, byStatus map[string]shared.BookingSnapshot) {
	seriesID := uuid.New()

	earlier := s.member(seriesID, slotgrid.NewDate(2024, 2, 23), "confirmed")
	completed := s.member(seriesID, slotgrid.NewDate(2024, 3, 1), "completed")
	addressed = s.member(seriesID, slotgrid.NewDate(2024, 3, 8), "pending")
	confirmed := s.member(seriesID, slotgrid.NewDate(2024, 3, 15), "confirmed")
	inProgress := s.member(seriesID, slotgrid.NewDate(2024, 3, 22), "in_progress")
	latePending := s.member(seriesID, slotgrid.NewDate(2024, 3, 29), "pending")
	alreadyCancelled := s.member(seriesID, slotgrid.NewDate(2024, 4, 5), "cancelled")

	members := []shared.BookingSnapshot{earlier, completed, addressed, confirmed, inProgress, latePending, alreadyCancelled}
	s.reads.series[seriesID] = members
	for _, m := range members {
		m := m
		s.reads.bookings[m.ID] = &m
	}

	byStatus = map[string]shared.BookingSnapshot{
		"earlier":     earlier,
		"confirmed":   confirmed,
		"inProgress":  inProgress,
		"latePending": latePending,
	}
	return addressed, byStatus
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	s.Run("single scope cancels only the addressed booking", func() {
		s.SetupTest()
		snap := s.member(uuid.New(), slotgrid.NewDate(2024, 3, 8), "pending")
		snap.SeriesID = nil
		s.reads.bookings[snap.ID] = &snap

		count, err := s.commands.CancelBooking(s.ctx, snap.ID, dombooking.ScopeSingle, nil)
		s.Require().NoError(err)
		s.Equal(1, count)

		s.Require().Len(s.repo.updated, 1)
		s.Equal(dombooking.StatusCancelled, s.repo.updated[0].Status())
		s.Empty(s.repo.cancelledIDs)

		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.TopicBookingCancelled, s.publisher.events[0].topic)
	})

	s.Run("from_date scope cancels pending and confirmed members from the pivot", func() {
		s.SetupTest()
		addressed, others := s.seedSeries()

		count, err := s.commands.CancelBooking(s.ctx, addressed.ID, dombooking.ScopeFromDate, nil)
		s.Require().NoError(err)
		s.Equal(3, count)

		s.ElementsMatch(
			[]uuid.UUID{addressed.ID, others["confirmed"].ID, others["latePending"].ID},
			s.repo.cancelledIDs,
		)
	})

	s.Run("from_date scope honors an explicit pivot date", func() {
		s.SetupTest()
		addressed, others := s.seedSeries()
		pivot := slotgrid.NewDate(2024, 3, 15)

		count, err := s.commands.CancelBooking(s.ctx, addressed.ID, dombooking.ScopeFromDate, &pivot)
		s.Require().NoError(err)
		s.Equal(2, count)

		s.ElementsMatch(
			[]uuid.UUID{others["confirmed"].ID, others["latePending"].ID},
			s.repo.cancelledIDs,
		)
	})

	s.Run("all_pending scope cancels pending and confirmed members regardless of date", func() {
		s.SetupTest()
		addressed, others := s.seedSeries()

		count, err := s.commands.CancelBooking(s.ctx, addressed.ID, dombooking.ScopeAllPending, nil)
		s.Require().NoError(err)
		s.Equal(4, count)

		s.ElementsMatch(
			[]uuid.UUID{others["earlier"].ID, addressed.ID, others["confirmed"].ID, others["latePending"].ID},
			s.repo.cancelledIDs,
		)
	})

	s.Run("in-progress and finished members survive every wide scope", func() {
		s.SetupTest()
		addressed, others := s.seedSeries()

		_, err := s.commands.CancelBooking(s.ctx, addressed.ID, dombooking.ScopeAllPending, nil)
		s.Require().NoError(err)

		s.NotContains(s.repo.cancelledIDs, others["inProgress"].ID)
	})

	s.Run("error: wide scope on a booking outside any series", func() {
		s.SetupTest()
		snap := s.member(uuid.New(), slotgrid.NewDate(2024, 3, 8), "pending")
		snap.SeriesID = nil
		s.reads.bookings[snap.ID] = &snap

		_, err := s.commands.CancelBooking(s.ctx, snap.ID, dombooking.ScopeFromDate, nil)
		s.ErrorIs(err, commands.ErrNotRecurring)
		s.Empty(s.publisher.events)
	})

	s.Run("error: unknown booking", func() {
		s.SetupTest()
		_, err := s.commands.CancelBooking(s.ctx, uuid.New(), dombooking.ScopeSingle, nil)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestCreateSeries() {
	req := func(weeks int) commands.CreateSeriesRequest {
		return commands.CreateSeriesRequest{
			ResourceID:  s.resourceID,
			ClientName:  "Juan Pérez",
			ClientPhone: "+54 11 5555-0101",
			StartDate:   slotgrid.NewDate(2024, 3, 1),
			Weeks:       weeks,
			Start:       "18:00",
			DurationMin: 60,
		}
	}

	s.Run("creates a member per week and links them to one series", func() {
		s.SetupTest()

		result, err := s.commands.CreateSeries(s.ctx, req(3), s.userID)
		s.Require().NoError(err)

		s.Len(result.BookingIDs, 3)
		s.Empty(result.SkippedDates)
		s.Require().Len(s.repo.created, 3)

		wantDates := []string{"2024-03-01", "2024-03-08", "2024-03-15"}
		for i, b := range s.repo.created {
			s.Equal(wantDates[i], b.Date().String())
			s.Require().NotNil(b.SeriesID())
			s.Equal(result.SeriesID, *b.SeriesID())
		}
	})

	s.Run("skips conflicting dates and reports them", func() {
		s.SetupTest()
		s.reads.windows["2024-03-08"] = []slotgrid.Booking{{
			ID:          uuid.New(),
			ResourceID:  s.resourceID,
			Date:        slotgrid.NewDate(2024, 3, 8),
			Start:       "18:30",
			DurationMin: 60,
		}}

		result, err := s.commands.CreateSeries(s.ctx, req(3), s.userID)
		s.Require().NoError(err)

		s.Len(result.BookingIDs, 2)
		s.Equal([]string{"2024-03-08"}, result.SkippedDates)

		s.Require().Len(s.publisher.events, 1)
		s.Equal(commands.TopicBookingSeriesCreated, s.publisher.events[0].topic)
	})

	s.Run("error: every date already taken", func() {
		s.SetupTest()
		for _, d := range []string{"2024-03-01", "2024-03-08"} {
			date, perr := slotgrid.ParseDate(d)
			s.Require().NoError(perr)
			s.reads.windows[d] = []slotgrid.Booking{{
				ID:          uuid.New(),
				ResourceID:  s.resourceID,
				Date:        date,
				Start:       "18:00",
				DurationMin: 60,
			}}
		}

		_, err := s.commands.CreateSeries(s.ctx, req(2), s.userID)
		s.ErrorIs(err, commands.ErrSeriesFullyBooked)
		s.Empty(s.publisher.events)
	})

	s.Run("error: series length out of range", func() {
		s.SetupTest()
		for _, weeks := range []int{0, 53} {
			_, err := s.commands.CreateSeries(s.ctx, req(weeks), s.userID)
			s.ErrorIs(err, commands.ErrInvalidSeriesLength)
		}
	})
}
