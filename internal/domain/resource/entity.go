package resource

import (
	"strings"
	"time"

	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errs.New("resource name required")
	ErrInvalidKind     = errs.New("invalid resource kind")
	ErrNegativePrice   = errs.New("price per hour cannot be negative")
	ErrInactiveBooking = errs.New("inactive resource cannot be booked")
)

// KindAmenity marks a bookable that is not a sports court (grill, function
// room, pool lane). Courts carry their sport name as the kind. Courts and
// amenities share one ID namespace: the grid treats both as columns.
const KindAmenity = "amenity"

// Resource is a bookable column of the day grid: a court or an amenity of an
// establishment.
type Resource struct {
	id                uuid.UUID
	establishmentID   uuid.UUID
	name              string
	kind              string
	pricePerHourCents int64
	active            bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewResource(establishmentID uuid.UUID, name, kind string, pricePerHourCents int64) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		return nil, ErrInvalidKind
	}
	if pricePerHourCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Resource{
		id:                uuid.New(),
		establishmentID:   establishmentID,
		name:              name,
		kind:              kind,
		pricePerHourCents: pricePerHourCents,
		active:            true,
	}, nil
}

func ReconstructResource(
	id, establishmentID uuid.UUID,
	name, kind string,
	pricePerHourCents int64,
	active bool,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:                id,
		establishmentID:   establishmentID,
		name:              name,
		kind:              kind,
		pricePerHourCents: pricePerHourCents,
		active:            active,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (r *Resource) ID() uuid.UUID              { return r.id }
func (r *Resource) EstablishmentID() uuid.UUID { return r.establishmentID }
func (r *Resource) Name() string               { return r.name }
func (r *Resource) Kind() string               { return r.kind }
func (r *Resource) PricePerHourCents() int64   { return r.pricePerHourCents }
func (r *Resource) Active() bool               { return r.active }
func (r *Resource) CreatedAt() time.Time       { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time       { return r.updatedAt }

func (r *Resource) IsAmenity() bool {
	return r.kind == KindAmenity
}

func (r *Resource) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	r.name = name
	return nil
}

func (r *Resource) SetPrice(pricePerHourCents int64) error {
	if pricePerHourCents < 0 {
		return ErrNegativePrice
	}
	r.pricePerHourCents = pricePerHourCents
	return nil
}

func (r *Resource) Deactivate() {
	r.active = false
}

func (r *Resource) Activate() {
	r.active = true
}

// PriceFor computes the charge for a booking of the given length. Prices are
// per hour; partial hours charge proportionally.
func (r *Resource) PriceFor(durationMin int) int64 {
	if durationMin <= 0 {
		return 0
	}
	return r.pricePerHourCents * int64(durationMin) / 60
}
