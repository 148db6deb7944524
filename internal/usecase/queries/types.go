package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	EstablishmentID uuid.UUID  `json:"establishment_id"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	ResourceName    string     `json:"resource_name"`
	ClientName      string     `json:"client_name"`
	ClientPhone     string     `json:"client_phone,omitempty"`
	Date            string     `json:"date"`
	Start           string     `json:"start"`
	DurationMin     int        `json:"duration_min"`
	EndMin          int        `json:"end_min"`
	Status          string     `json:"status"`
	PriceCents      int64      `json:"price_cents"`
	SeriesID        *uuid.UUID `json:"series_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	ClientName   string    `json:"client_name"`
	Date         string    `json:"date"`
	Start        string    `json:"start"`
	DurationMin  int       `json:"duration_min"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResourceView represents read-optimized court/amenity data
type ResourceView struct {
	ID                uuid.UUID `json:"id"`
	EstablishmentID   uuid.UUID `json:"establishment_id"`
	Name              string    `json:"name"`
	Kind              string    `json:"kind"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type EstablishmentView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GridView is the day sheet: one column per resource, one row per slot
// label between opening and closing.
type GridView struct {
	EstablishmentID uuid.UUID          `json:"establishment_id"`
	Date            string             `json:"date"`
	OpenHour        int                `json:"open_hour"`
	CloseHour       int                `json:"close_hour"`
	Slots           []string           `json:"slots"`
	Resources       []GridResourceView `json:"resources"`
}

type GridResourceView struct {
	ID                uuid.UUID      `json:"id"`
	Name              string         `json:"name"`
	Kind              string         `json:"kind"`
	PricePerHourCents int64          `json:"price_per_hour_cents"`
	Cells             []GridCellView `json:"cells"`
}

// GridCellView describes one slot in one column. Span is set on the first
// cell of a booking and zero on its continuation cells, so renderers can
// merge rows the way a paper planner would.
type GridCellView struct {
	Time         string     `json:"time"`
	Date         string     `json:"date"`
	Past         bool       `json:"past"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ClientName   *string    `json:"client_name,omitempty"`
	Span         int        `json:"span,omitempty"`
	Continuation bool       `json:"continuation,omitempty"`
}

type RegisterSessionView struct {
	ID              uuid.UUID  `json:"id"`
	EstablishmentID uuid.UUID  `json:"establishment_id"`
	OpenedBy        uuid.UUID  `json:"opened_by"`
	OpeningCents    int64      `json:"opening_cents"`
	ClosingCents    *int64     `json:"closing_cents,omitempty"`
	IncomeCents     int64      `json:"income_cents"`
	ExpenseCents    int64      `json:"expense_cents"`
	ExpectedCents   int64      `json:"expected_cents"`
	OpenedAt        time.Time  `json:"opened_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

type MovementView struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	Type        string     `json:"type"`
	Concept     string     `json:"concept"`
	AmountCents int64      `json:"amount_cents"`
	Method      string     `json:"method"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AccountView struct {
	ID              uuid.UUID `json:"id"`
	EstablishmentID uuid.UUID `json:"establishment_id"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone,omitempty"`
	BalanceCents    int64     `json:"balance_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AccountEntryView struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   uuid.UUID  `json:"account_id"`
	Type        string     `json:"type"`
	Concept     string     `json:"concept"`
	AmountCents int64      `json:"amount_cents"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type MaintenanceView struct {
	ID           uuid.UUID  `json:"id"`
	ResourceID   uuid.UUID  `json:"resource_id"`
	ResourceName string     `json:"resource_name"`
	ReportedBy   uuid.UUID  `json:"reported_by"`
	Description  string     `json:"description"`
	Resolved     bool       `json:"resolved"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	EstablishmentID *uuid.UUID `json:"establishment_id,omitempty"`
	IsActive        bool       `json:"is_active"`
}
