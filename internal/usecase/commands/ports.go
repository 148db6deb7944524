package commands

import (
	"context"
)

// Event topics published after booking mutations commit. Delivery is
// best-effort: a broker outage never fails the request.
const (
	TopicBookingCreated       = "booking.created"
	TopicBookingSeriesCreated = "booking.series_created"
	TopicBookingMoved         = "booking.moved"
	TopicBookingCancelled     = "booking.cancelled"
	TopicBookingStatus        = "booking.status_changed"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
