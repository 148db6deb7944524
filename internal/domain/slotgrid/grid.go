// Package slotgrid computes the day grid for a set of bookable resources:
// which 30-minute slots exist for an operating window, which calendar date
// each slot belongs to when the window crosses midnight, which bookings
// occupy which slots, and whether a proposed booking conflicts with the
// existing ones. Everything here is pure computation over snapshots; reading
// bookings and committing mutations belong to the layers above.
package slotgrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SlotMinutes is the grid resolution. Operating windows are expressed in
// whole hours, so every window splits into an exact number of slots.
const SlotMinutes = 30

const minutesPerDay = 24 * 60

// Booking is the flat record the grid computes over. It deliberately carries
// only what layout and conflict math need; the full entity lives in the
// booking package.
type Booking struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Date       Date
	Start      string // "HH:MM" or "HH:MM:SS"
	DurationMin int
	// EndMin is the stored end as minutes since midnight. Zero means not
	// stored; the end is then Start + DurationMin.
	EndMin    int
	Cancelled bool
}

// Candidate is a proposed new or moved booking to be checked for conflicts.
type Candidate struct {
	ResourceID  uuid.UUID
	Date        Date
	Start       string
	DurationMin int
}

// TimeSlots returns the "HH:MM" labels of every slot from startHour
// (inclusive) to endHour (exclusive), two per hour. Hours past 24 wrap for
// display: a window of 20..25 yields 20:00 through 00:30. Operating windows
// span at most 24 hours (establishment.NewWindow enforces this), so labels
// never repeat within one grid.
func TimeSlots(startHour, endHour int) []string {
	if endHour <= startHour {
		return nil
	}
	slots := make([]string, 0, (endHour-startHour)*2)
	for h := startHour; h < endHour; h++ {
		display := h % 24
		slots = append(slots, fmt.Sprintf("%02d:00", display), fmt.Sprintf("%02d:30", display))
	}
	return slots
}

// IsPostMidnight reports whether a slot label belongs to the stretch of the
// operating window that runs past midnight. Only possible when the window's
// close hour exceeds 24; then every label whose hour is below closeHour-24
// was wrapped by TimeSlots and falls on the next calendar date.
func IsPostMidnight(label string, openHour, closeHour int) bool {
	if closeHour <= 24 {
		return false
	}
	h, _, ok := splitClock(label)
	if !ok {
		return false
	}
	return h < closeHour-24
}

// SlotDate maps a slot label to the calendar date it actually falls on:
// the grid's nominal date, or the following day for post-midnight slots.
func SlotDate(label string, gridDate Date, openHour, closeHour int) Date {
	if IsPostMidnight(label, openHour, closeHour) {
		return gridDate.Next()
	}
	return gridDate
}

// MinuteOfDay parses a clock label into minutes since midnight. Seconds are
// tolerated and ignored, matching the two formats the booking API emits.
func MinuteOfDay(label string) (int, bool) {
	h, m, ok := splitClock(label)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

// FindBookingForSlot returns the booking occupying the given slot on the
// given resource, if any. Cancelled bookings never occupy a slot. The slot's
// effective calendar date is derived from the grid date and the operating
// window, so post-midnight slots match bookings dated the following day.
func FindBookingForSlot(bookings []Booking, resourceID uuid.UUID, label string, gridDate Date, openHour, closeHour int) (Booking, bool) {
	slotMin, ok := MinuteOfDay(label)
	if !ok {
		return Booking{}, false
	}
	effDate := SlotDate(label, gridDate, openHour, closeHour)

	for _, b := range bookings {
		if b.Cancelled || b.ResourceID != resourceID || !b.Date.Equal(effDate) {
			continue
		}
		start, ok := MinuteOfDay(b.Start)
		if !ok {
			continue
		}
		if start <= slotMin && slotMin < start+b.DurationMin {
			return b, true
		}
	}
	return Booking{}, false
}

// Span returns how many grid rows a booking occupies. Durations that are not
// a multiple of the slot size round up: 45 minutes still blocks two rows.
func Span(durationMin int) int {
	if durationMin <= 0 {
		return 0
	}
	return (durationMin + SlotMinutes - 1) / SlotMinutes
}

// HasConflict reports whether the candidate's half-open interval
// [start, start+duration) overlaps any non-cancelled booking on the same
// resource and calendar date. excludeID skips one booking, which is how a
// move is checked without colliding with itself. Back-to-back bookings do
// not conflict: one ending at 10:00 and one starting at 10:00 may coexist.
func HasConflict(c Candidate, existing []Booking, excludeID uuid.UUID) bool {
	newStart, ok := MinuteOfDay(c.Start)
	if !ok {
		return false
	}
	newEnd := newStart + c.DurationMin

	for _, b := range existing {
		if b.Cancelled || b.ResourceID != c.ResourceID || !b.Date.Equal(c.Date) {
			continue
		}
		if excludeID != uuid.Nil && b.ID == excludeID {
			continue
		}
		bStart, ok := MinuteOfDay(b.Start)
		if !ok {
			continue
		}
		bEnd := b.EndMin
		if bEnd == 0 {
			bEnd = bStart + b.DurationMin
		}
		if newStart < bEnd && newEnd > bStart {
			return true
		}
	}
	return false
}

// MaxAvailableDuration returns how many minutes a booking starting at the
// given slot can run before it would hit the next booking on the resource or
// the closing minute, whichever comes first. This caps the duration options
// offered when creating a booking.
func MaxAvailableDuration(resourceID uuid.UUID, date Date, startLabel string, bookings []Booking, closingMinute int) int {
	start, ok := MinuteOfDay(startLabel)
	if !ok {
		return 0
	}

	limit := closingMinute
	for _, b := range bookings {
		if b.Cancelled || b.ResourceID != resourceID || !b.Date.Equal(date) {
			continue
		}
		bStart, ok := MinuteOfDay(b.Start)
		if !ok {
			continue
		}
		if bStart > start && bStart < limit {
			limit = bStart
		}
	}

	if limit <= start {
		return 0
	}
	return limit - start
}

// ClosingMinute resolves the minute-of-day at which bookings must end for a
// slot on the given effective date. For a window closing past midnight the
// nominal date runs to 24:00 and the spill-over date runs to closeHour-24.
func ClosingMinute(effectiveDate, gridDate Date, closeHour int) int {
	if closeHour <= 24 {
		return closeHour * 60
	}
	if effectiveDate.Equal(gridDate) {
		return minutesPerDay
	}
	return (closeHour - 24) * 60
}

// IsSlotInPast reports whether a slot has already elapsed relative to now.
// The slot's effective date decides first; only on the current date does the
// clock time matter, and a slot whose start minute equals now's minute is
// considered elapsed. Existing bookings on past slots stay visible and
// mutable; this only gates creating new ones.
func IsSlotInPast(label string, gridDate Date, openHour, closeHour int, now time.Time) bool {
	effDate := SlotDate(label, gridDate, openHour, closeHour)
	today := DateOf(now)

	if effDate.Before(today) {
		return true
	}
	if effDate.After(today) {
		return false
	}

	slotMin, ok := MinuteOfDay(label)
	if !ok {
		return false
	}
	nowMin := now.Hour()*60 + now.Minute()
	return slotMin <= nowMin
}

func splitClock(label string) (hour, minute int, ok bool) {
	parts := strings.Split(label, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
