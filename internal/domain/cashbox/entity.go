package cashbox

import (
	"strings"
	"time"

	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRegisterClosed   = errs.New("register session is closed")
	ErrRegisterOpen     = errs.New("register session already open")
	ErrNonPositiveCents = errs.New("amount must be positive")
	ErrEmptyConcept     = errs.New("movement concept required")
	ErrInsufficientFunds = errs.New("payment exceeds account balance")
)

// Session is one open-to-close stretch of the cash register. Movements can
// only be recorded against the open session.
type Session struct {
	id              uuid.UUID
	establishmentID uuid.UUID
	openedBy        uuid.UUID
	openingCents    int64
	closingCents    *int64
	openedAt        time.Time
	closedAt        *time.Time
}

func OpenSession(establishmentID, openedBy uuid.UUID, openingCents int64, now time.Time) (*Session, error) {
	if openingCents < 0 {
		return nil, ErrNonPositiveCents
	}
	return &Session{
		id:              uuid.New(),
		establishmentID: establishmentID,
		openedBy:        openedBy,
		openingCents:    openingCents,
		openedAt:        now,
	}, nil
}

func ReconstructSession(
	id, establishmentID, openedBy uuid.UUID,
	openingCents int64,
	closingCents *int64,
	openedAt time.Time,
	closedAt *time.Time,
) *Session {
	return &Session{
		id:              id,
		establishmentID: establishmentID,
		openedBy:        openedBy,
		openingCents:    openingCents,
		closingCents:    closingCents,
		openedAt:        openedAt,
		closedAt:        closedAt,
	}
}

func (s *Session) ID() uuid.UUID              { return s.id }
func (s *Session) EstablishmentID() uuid.UUID { return s.establishmentID }
func (s *Session) OpenedBy() uuid.UUID        { return s.openedBy }
func (s *Session) OpeningCents() int64        { return s.openingCents }
func (s *Session) ClosingCents() *int64       { return s.closingCents }
func (s *Session) OpenedAt() time.Time        { return s.openedAt }
func (s *Session) ClosedAt() *time.Time       { return s.closedAt }

func (s *Session) IsOpen() bool {
	return s.closedAt == nil
}

// Close records the counted closing amount. The difference against the
// expected total is the caller's concern; the session just stores the count.
func (s *Session) Close(countedCents int64, now time.Time) error {
	if !s.IsOpen() {
		return ErrRegisterClosed
	}
	if countedCents < 0 {
		return ErrNonPositiveCents
	}
	s.closingCents = &countedCents
	s.closedAt = &now
	return nil
}

// Movement is a single income or expense recorded in a register session.
type Movement struct {
	id          uuid.UUID
	sessionID   uuid.UUID
	kind        MovementType
	concept     string
	amountCents int64
	method      PaymentMethod
	bookingID   *uuid.UUID
	createdAt   time.Time
}

func NewMovement(sessionID uuid.UUID, kind MovementType, concept string, amountCents int64, method PaymentMethod, bookingID *uuid.UUID) (*Movement, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, ErrEmptyConcept
	}
	if amountCents <= 0 {
		return nil, ErrNonPositiveCents
	}
	return &Movement{
		id:          uuid.New(),
		sessionID:   sessionID,
		kind:        kind,
		concept:     concept,
		amountCents: amountCents,
		method:      method,
		bookingID:   bookingID,
	}, nil
}

func ReconstructMovement(
	id, sessionID uuid.UUID,
	kind MovementType,
	concept string,
	amountCents int64,
	method PaymentMethod,
	bookingID *uuid.UUID,
	createdAt time.Time,
) *Movement {
	return &Movement{
		id:          id,
		sessionID:   sessionID,
		kind:        kind,
		concept:     concept,
		amountCents: amountCents,
		method:      method,
		bookingID:   bookingID,
		createdAt:   createdAt,
	}
}

func (m *Movement) ID() uuid.UUID         { return m.id }
func (m *Movement) SessionID() uuid.UUID  { return m.sessionID }
func (m *Movement) Kind() MovementType    { return m.kind }
func (m *Movement) Concept() string       { return m.concept }
func (m *Movement) AmountCents() int64    { return m.amountCents }
func (m *Movement) Method() PaymentMethod { return m.method }
func (m *Movement) BookingID() *uuid.UUID { return m.bookingID }
func (m *Movement) CreatedAt() time.Time  { return m.createdAt }

// Signed returns the movement's contribution to the register total.
func (m *Movement) Signed() int64 {
	if m.kind == MovementExpense {
		return -m.amountCents
	}
	return m.amountCents
}

// Account is a client's current account with the establishment: charges
// accumulate debt, payments reduce it.
type Account struct {
	id              uuid.UUID
	establishmentID uuid.UUID
	clientName      string
	clientPhone     string
	balanceCents    int64 // positive balance = client owes the house
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAccount(establishmentID uuid.UUID, clientName, clientPhone string) (*Account, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, errs.New("account client name required")
	}
	return &Account{
		id:              uuid.New(),
		establishmentID: establishmentID,
		clientName:      clientName,
		clientPhone:     strings.TrimSpace(clientPhone),
	}, nil
}

func ReconstructAccount(
	id, establishmentID uuid.UUID,
	clientName, clientPhone string,
	balanceCents int64,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		id:              id,
		establishmentID: establishmentID,
		clientName:      clientName,
		clientPhone:     clientPhone,
		balanceCents:    balanceCents,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (a *Account) ID() uuid.UUID              { return a.id }
func (a *Account) EstablishmentID() uuid.UUID { return a.establishmentID }
func (a *Account) ClientName() string         { return a.clientName }
func (a *Account) ClientPhone() string        { return a.clientPhone }
func (a *Account) BalanceCents() int64        { return a.balanceCents }
func (a *Account) CreatedAt() time.Time       { return a.createdAt }
func (a *Account) UpdatedAt() time.Time       { return a.updatedAt }

func (a *Account) ApplyCharge(amountCents int64) error {
	if amountCents <= 0 {
		return ErrNonPositiveCents
	}
	a.balanceCents += amountCents
	return nil
}

func (a *Account) ApplyPayment(amountCents int64) error {
	if amountCents <= 0 {
		return ErrNonPositiveCents
	}
	if amountCents > a.balanceCents {
		return ErrInsufficientFunds
	}
	a.balanceCents -= amountCents
	return nil
}
