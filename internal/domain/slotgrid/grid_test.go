//go:build unit

package slotgrid_test

import (
	"testing"
	"time"

	"courtgrid/internal/domain/slotgrid"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) slotgrid.Date {
	d, err := slotgrid.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTimeSlots(t *testing.T) {
	t.Run("regular window", func(t *testing.T) {
		slots := slotgrid.TimeSlots(8, 23)

		require.Len(t, slots, 30)
		assert.Equal(t, "08:00", slots[0])
		assert.Equal(t, "22:30", slots[len(slots)-1])
	})

	t.Run("window crossing midnight wraps display hours", func(t *testing.T) {
		slots := slotgrid.TimeSlots(20, 25)

		require.Len(t, slots, 10)
		assert.Equal(t, []string{"00:00", "00:30"}, slots[8:])

		for i, label := range slots {
			post := slotgrid.IsPostMidnight(label, 20, 25)
			if i >= 8 {
				assert.True(t, post, "slot %s should be post-midnight", label)
			} else {
				assert.False(t, post, "slot %s should not be post-midnight", label)
			}
		}
	})

	t.Run("no midnight crossing when window ends at or before 24", func(t *testing.T) {
		assert.False(t, slotgrid.IsPostMidnight("00:30", 8, 23))
		assert.False(t, slotgrid.IsPostMidnight("00:30", 0, 24))
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, slotgrid.TimeSlots(8, 23), slotgrid.TimeSlots(8, 23))
	})

	t.Run("empty window", func(t *testing.T) {
		assert.Nil(t, slotgrid.TimeSlots(10, 10))
		assert.Nil(t, slotgrid.TimeSlots(10, 8))
	})
}

func TestSlotDate(t *testing.T) {
	grid := date("2024-03-01")

	assert.Equal(t, grid, slotgrid.SlotDate("22:00", grid, 20, 25))
	assert.Equal(t, date("2024-03-02"), slotgrid.SlotDate("00:30", grid, 20, 25))
	assert.Equal(t, grid, slotgrid.SlotDate("09:00", grid, 8, 23))

	t.Run("month rollover", func(t *testing.T) {
		assert.Equal(t, date("2024-03-01"), slotgrid.SlotDate("00:00", date("2024-02-29"), 20, 26))
	})
}

func TestSpan(t *testing.T) {
	cases := []struct {
		durationMin int
		want        int
	}{
		{30, 1},
		{45, 2},
		{60, 2},
		{90, 3},
		{120, 4},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, slotgrid.Span(c.durationMin), "duration %d", c.durationMin)
	}
}

func TestFindBookingForSlot(t *testing.T) {
	courtID := uuid.New()
	otherID := uuid.New()
	grid := date("2024-03-01")

	booked := slotgrid.Booking{
		ID:          uuid.New(),
		ResourceID:  courtID,
		Date:        grid,
		Start:       "18:00",
		DurationMin: 90,
	}
	cancelled := slotgrid.Booking{
		ID:          uuid.New(),
		ResourceID:  courtID,
		Date:        grid,
		Start:       "10:00",
		DurationMin: 60,
		Cancelled:   true,
	}
	bookings := []slotgrid.Booking{booked, cancelled}

	t.Run("slot inside booking interval", func(t *testing.T) {
		for _, label := range []string{"18:00", "18:30", "19:00"} {
			got, ok := slotgrid.FindBookingForSlot(bookings, courtID, label, grid, 8, 23)
			require.True(t, ok, "slot %s", label)
			assert.Equal(t, booked.ID, got.ID)
		}
	})

	t.Run("slot at booking end is free", func(t *testing.T) {
		_, ok := slotgrid.FindBookingForSlot(bookings, courtID, "19:30", grid, 8, 23)
		assert.False(t, ok)
	})

	t.Run("cancelled bookings never occupy", func(t *testing.T) {
		_, ok := slotgrid.FindBookingForSlot(bookings, courtID, "10:00", grid, 8, 23)
		assert.False(t, ok)
	})

	t.Run("other resource does not match", func(t *testing.T) {
		_, ok := slotgrid.FindBookingForSlot(bookings, otherID, "18:00", grid, 8, 23)
		assert.False(t, ok)
	})

	t.Run("seconds in start time are tolerated", func(t *testing.T) {
		withSeconds := []slotgrid.Booking{{
			ID:          uuid.New(),
			ResourceID:  courtID,
			Date:        grid,
			Start:       "14:00:00",
			DurationMin: 60,
		}}
		got, ok := slotgrid.FindBookingForSlot(withSeconds, courtID, "14:30", grid, 8, 23)
		require.True(t, ok)
		assert.Equal(t, withSeconds[0].ID, got.ID)
	})

	t.Run("post-midnight slot matches next-day booking", func(t *testing.T) {
		nextDay := []slotgrid.Booking{{
			ID:          uuid.New(),
			ResourceID:  courtID,
			Date:        date("2024-03-02"),
			Start:       "00:00",
			DurationMin: 60,
		}}
		got, ok := slotgrid.FindBookingForSlot(nextDay, courtID, "00:30", grid, 20, 25)
		require.True(t, ok)
		assert.Equal(t, nextDay[0].ID, got.ID)

		// Same label without midnight crossing looks on the grid date itself.
		_, ok = slotgrid.FindBookingForSlot(nextDay, courtID, "00:30", grid, 0, 24)
		assert.False(t, ok)
	})
}

func TestHasConflict(t *testing.T) {
	courtID := uuid.New()
	grid := date("2024-03-01")

	existing := slotgrid.Booking{
		ID:          uuid.New(),
		ResourceID:  courtID,
		Date:        grid,
		Start:       "18:00",
		DurationMin: 60,
	}

	candidate := func(start string, duration int) slotgrid.Candidate {
		return slotgrid.Candidate{
			ResourceID:  courtID,
			Date:        grid,
			Start:       start,
			DurationMin: duration,
		}
	}

	t.Run("overlap in the middle", func(t *testing.T) {
		assert.True(t, slotgrid.HasConflict(candidate("18:30", 30), []slotgrid.Booking{existing}, uuid.Nil))
	})

	t.Run("containment conflicts", func(t *testing.T) {
		container := slotgrid.Booking{
			ID:          uuid.New(),
			ResourceID:  courtID,
			Date:        grid,
			Start:       "17:00",
			DurationMin: 180,
		}
		assert.True(t, slotgrid.HasConflict(candidate("18:00", 30), []slotgrid.Booking{container}, uuid.Nil))
	})

	t.Run("touching intervals do not conflict", func(t *testing.T) {
		assert.False(t, slotgrid.HasConflict(candidate("19:00", 60), []slotgrid.Booking{existing}, uuid.Nil))
		assert.False(t, slotgrid.HasConflict(candidate("17:00", 60), []slotgrid.Booking{existing}, uuid.Nil))
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		gone := existing
		gone.Cancelled = true
		assert.False(t, slotgrid.HasConflict(candidate("18:00", 60), []slotgrid.Booking{gone}, uuid.Nil))
	})

	t.Run("different date does not conflict", func(t *testing.T) {
		c := candidate("18:30", 30)
		c.Date = date("2024-03-02")
		assert.False(t, slotgrid.HasConflict(c, []slotgrid.Booking{existing}, uuid.Nil))
	})

	t.Run("exclude lets a booking move within its own interval", func(t *testing.T) {
		assert.False(t, slotgrid.HasConflict(candidate("18:30", 30), []slotgrid.Booking{existing}, existing.ID))
	})

	t.Run("stored end wins over duration", func(t *testing.T) {
		short := existing
		short.EndMin = 18*60 + 30 // stored end 18:30 despite 60min duration
		assert.False(t, slotgrid.HasConflict(candidate("18:30", 30), []slotgrid.Booking{short}, uuid.Nil))
	})
}

func TestMaxAvailableDuration(t *testing.T) {
	courtID := uuid.New()
	grid := date("2024-03-01")
	closing := 23 * 60

	blocking := slotgrid.Booking{
		ID:          uuid.New(),
		ResourceID:  courtID,
		Date:        grid,
		Start:       "10:00",
		DurationMin: 180, // own duration must not matter
	}

	t.Run("capped by next booking start", func(t *testing.T) {
		got := slotgrid.MaxAvailableDuration(courtID, grid, "09:00", []slotgrid.Booking{blocking}, closing)
		assert.Equal(t, 60, got)
	})

	t.Run("capped by closing when nothing blocks", func(t *testing.T) {
		got := slotgrid.MaxAvailableDuration(courtID, grid, "21:00", nil, closing)
		assert.Equal(t, 120, got)
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		gone := blocking
		gone.Cancelled = true
		got := slotgrid.MaxAvailableDuration(courtID, grid, "09:00", []slotgrid.Booking{gone}, closing)
		assert.Equal(t, closing-9*60, got)
	})

	t.Run("booking starting at the query time does not count as next", func(t *testing.T) {
		got := slotgrid.MaxAvailableDuration(courtID, grid, "10:00", []slotgrid.Booking{blocking}, closing)
		assert.Equal(t, closing-10*60, got)
	})
}

func TestClosingMinute(t *testing.T) {
	grid := date("2024-03-01")

	assert.Equal(t, 23*60, slotgrid.ClosingMinute(grid, grid, 23))
	assert.Equal(t, 24*60, slotgrid.ClosingMinute(grid, grid, 25))
	assert.Equal(t, 60, slotgrid.ClosingMinute(date("2024-03-02"), grid, 25))
}

func TestIsSlotInPast(t *testing.T) {
	grid := date("2024-03-01")
	noon := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("earlier date is past", func(t *testing.T) {
		assert.True(t, slotgrid.IsSlotInPast("18:00", date("2024-02-29"), 8, 23, noon))
	})

	t.Run("later date is not past", func(t *testing.T) {
		assert.False(t, slotgrid.IsSlotInPast("08:00", date("2024-03-02"), 8, 23, noon))
	})

	t.Run("same date compares clock time", func(t *testing.T) {
		assert.True(t, slotgrid.IsSlotInPast("11:30", grid, 8, 23, noon))
		assert.True(t, slotgrid.IsSlotInPast("12:00", grid, 8, 23, noon))
		assert.False(t, slotgrid.IsSlotInPast("12:30", grid, 8, 23, noon))
	})

	t.Run("post-midnight slot belongs to tomorrow", func(t *testing.T) {
		lateEvening := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
		assert.False(t, slotgrid.IsSlotInPast("00:30", grid, 20, 25, lateEvening))
	})
}

func TestEndToEndConflictScenario(t *testing.T) {
	courtID := uuid.New()
	grid := date("2024-03-01")

	existing := []slotgrid.Booking{{
		ID:          uuid.New(),
		ResourceID:  courtID,
		Date:        grid,
		Start:       "18:00",
		DurationMin: 60,
	}}

	overlap := slotgrid.Candidate{ResourceID: courtID, Date: grid, Start: "18:30", DurationMin: 30}
	adjacent := slotgrid.Candidate{ResourceID: courtID, Date: grid, Start: "19:00", DurationMin: 30}

	assert.True(t, slotgrid.HasConflict(overlap, existing, uuid.Nil))
	assert.False(t, slotgrid.HasConflict(adjacent, existing, uuid.Nil))
}
