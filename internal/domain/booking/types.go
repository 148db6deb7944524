package booking

import "courtgrid/internal/pkg/errs"

var ErrInvalidStatus = errs.New("invalid booking status")

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
	StatusNoShow     Status = "no_show"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCancelled, StatusCompleted, StatusNoShow:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal statuses accept no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the booking lifecycle:
// pending -> confirmed -> in_progress -> completed, with cancellation and
// no-show allowed from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusCancelled, StatusNoShow:
		return true
	case StatusConfirmed:
		return s == StatusPending
	case StatusInProgress:
		return s == StatusPending || s == StatusConfirmed
	case StatusCompleted:
		return s == StatusInProgress || s == StatusConfirmed
	default:
		return false
	}
}

// CancelScope selects how far a cancellation reaches into a recurring
// series.
type CancelScope string

const (
	// ScopeSingle cancels only the addressed booking.
	ScopeSingle CancelScope = "single"
	// ScopeFromDate cancels the addressed booking and every later member of
	// its series that is still pending or confirmed.
	ScopeFromDate CancelScope = "from_date"
	// ScopeAllPending cancels every pending or confirmed member of the
	// series regardless of date.
	ScopeAllPending CancelScope = "all_pending"
)

func NewCancelScope(s string) (CancelScope, error) {
	switch CancelScope(s) {
	case ScopeSingle, ScopeFromDate, ScopeAllPending:
		return CancelScope(s), nil
	case "":
		return ScopeSingle, nil
	default:
		return "", errs.New("invalid cancel scope")
	}
}
