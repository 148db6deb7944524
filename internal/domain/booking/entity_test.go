//go:build unit

package booking_test

import (
	"testing"

	"courtgrid/internal/domain/booking"
	"courtgrid/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, "18:00", actual.Start())
		assert.Equal(t, 60, actual.DurationMin())
		assert.Equal(t, 19*60, actual.EndMin())
		assert.False(t, actual.IsRecurring())
	})

	t.Run("input validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty client name",
				mutate: func(b *builder.BookingBuilder) { b.WithClientName("") },
				errIs:  booking.ErrEmptyClientName,
			},
			{
				name:   "malformed start time",
				mutate: func(b *builder.BookingBuilder) { b.WithStart("eighteen") },
				errIs:  booking.ErrInvalidStart,
			},
			{
				name:   "zero duration",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(0) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "duration off the slot raster",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(45) },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.BookingBuilder) { b.WithPriceCents(-1) },
				errIs:  booking.ErrNegativePrice,
			},
			{
				name:   "start with seconds is accepted",
				mutate: func(b *builder.BookingBuilder) { b.WithStart("18:00:00") },
			},
		})
	})

	t.Run("series membership", func(t *testing.T) {
		seriesID := uuid.New()
		actual, err := builder.NewBookingBuilder().WithSeriesID(seriesID).BuildDomain()
		require.NoError(t, err)

		assert.True(t, actual.IsRecurring())
		require.NotNil(t, actual.SeriesID())
		assert.Equal(t, seriesID, *actual.SeriesID())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b1, err1 := builder.NewBookingBuilder().BuildDomain()
		b2, err2 := builder.NewBookingBuilder().BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusConfirmed, true},
		{booking.StatusPending, booking.StatusInProgress, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusNoShow, true},
		{booking.StatusPending, booking.StatusCompleted, false},
		{booking.StatusConfirmed, booking.StatusInProgress, true},
		{booking.StatusConfirmed, booking.StatusCompleted, true},
		{booking.StatusConfirmed, booking.StatusPending, false},
		{booking.StatusInProgress, booking.StatusCompleted, true},
		{booking.StatusInProgress, booking.StatusConfirmed, false},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
		{booking.StatusNoShow, booking.StatusCancelled, false},
	}

	for _, c := range cases {
		name := string(c.from) + " to " + string(c.to)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}

	t.Run("entity rejects invalid transition", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.TransitionTo(booking.StatusConfirmed))
		require.NoError(t, b.TransitionTo(booking.StatusCompleted))

		err = b.TransitionTo(booking.StatusCancelled)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestMoveTo(t *testing.T) {
	t.Run("moves resource and recomputes end", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		target := uuid.New()
		require.NoError(t, b.MoveTo(target, b.Date(), "20:30"))

		assert.Equal(t, target, b.ResourceID())
		assert.Equal(t, "20:30", b.Start())
		assert.Equal(t, 20*60+30+60, b.EndMin())
	})

	t.Run("crossing midnight shifts the date", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		next := b.Date().Next()
		require.NoError(t, b.MoveTo(b.ResourceID(), next, "00:30"))

		assert.Equal(t, next, b.Date())
		assert.Equal(t, 30+60, b.EndMin())
	})

	t.Run("cancelled booking cannot move", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Cancel())

		err = b.MoveTo(uuid.New(), b.Date(), "20:30")
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestGridRecord(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	rec := b.GridRecord()
	assert.Equal(t, b.ID(), rec.ID)
	assert.Equal(t, b.ResourceID(), rec.ResourceID)
	assert.Equal(t, b.Start(), rec.Start)
	assert.False(t, rec.Cancelled)

	require.NoError(t, b.Cancel())
	assert.True(t, b.GridRecord().Cancelled)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
