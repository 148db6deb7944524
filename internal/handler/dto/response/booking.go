package response

import (
	"courtgrid/internal/usecase/queries"

	"github.com/google/uuid"
)

// CreateBookingResponse wraps the booking view with the idempotency replay
// flag so clients can tell a fresh booking from a replayed one.
type CreateBookingResponse struct {
	Booking  *queries.BookingView `json:"booking"`
	Replayed bool                 `json:"replayed"`
}

type CancelBookingResponse struct {
	Cancelled int `json:"cancelled"`
}

type CreateSeriesResponse struct {
	SeriesID     uuid.UUID   `json:"series_id"`
	BookingIDs   []uuid.UUID `json:"booking_ids"`
	SkippedDates []string    `json:"skipped_dates,omitempty"`
}

type MaxDurationResponse struct {
	MaxDurationMin int `json:"max_duration_min"`
}
