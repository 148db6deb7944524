package establishment

import (
	"strings"
	"time"

	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errs.New("establishment name required")
	ErrInvalidWindow = errs.New("invalid operating window")
)

// Window is the vertical axis of the day grid. CloseHour may exceed 24: a
// club open 20..25 closes at 01:00 the next day, and slots past midnight are
// attributed to the following calendar date. The window never spans more
// than 24 hours; past that point slot labels repeat and date attribution
// becomes ambiguous.
type Window struct {
	OpenHour  int
	CloseHour int
}

func NewWindow(openHour, closeHour int) (Window, error) {
	if openHour < 0 || openHour > 23 {
		return Window{}, ErrInvalidWindow
	}
	if closeHour <= openHour || closeHour > openHour+24 {
		return Window{}, ErrInvalidWindow
	}
	return Window{OpenHour: openHour, CloseHour: closeHour}, nil
}

func (w Window) CrossesMidnight() bool {
	return w.CloseHour > 24
}

// SlotCount is the number of 30-minute rows the window spans.
func (w Window) SlotCount() int {
	return (w.CloseHour - w.OpenHour) * 2
}

// Establishment is a sports facility: the owner of courts, amenities,
// bookings and a cash register.
type Establishment struct {
	id        uuid.UUID
	name      string
	address   string
	window    Window
	createdAt time.Time
	updatedAt time.Time
}

func NewEstablishment(name, address string, window Window) (*Establishment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Establishment{
		id:      uuid.New(),
		name:    name,
		address: strings.TrimSpace(address),
		window:  window,
	}, nil
}

func ReconstructEstablishment(
	id uuid.UUID,
	name, address string,
	window Window,
	createdAt, updatedAt time.Time,
) *Establishment {
	return &Establishment{
		id:        id,
		name:      name,
		address:   address,
		window:    window,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e *Establishment) ID() uuid.UUID        { return e.id }
func (e *Establishment) Name() string         { return e.name }
func (e *Establishment) Address() string      { return e.address }
func (e *Establishment) Window() Window       { return e.window }
func (e *Establishment) CreatedAt() time.Time { return e.createdAt }
func (e *Establishment) UpdatedAt() time.Time { return e.updatedAt }

func (e *Establishment) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	e.name = name
	return nil
}

func (e *Establishment) SetWindow(w Window) {
	e.window = w
}
