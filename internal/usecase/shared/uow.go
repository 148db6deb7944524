package shared

import (
	"context"
	"time"

	"courtgrid/internal/domain/booking"
	"courtgrid/internal/domain/cashbox"
	"courtgrid/internal/domain/establishment"
	"courtgrid/internal/domain/maintenance"
	"courtgrid/internal/domain/resource"
	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Resources() ResourceRepository
	Establishments() EstablishmentRepository
	Registers() RegisterRepository
	Accounts() AccountRepository
	Maintenance() MaintenanceRepository
	Idempotency() IdempotencyRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	EstablishmentByID(ctx context.Context, id uuid.UUID) (*EstablishmentSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookingsForWindow returns every non-cancelled booking touching the
	// resource on the given calendar date, locked FOR UPDATE when called
	// inside a transaction so concurrent writers serialize on the rows.
	BookingsForWindow(ctx context.Context, resourceID uuid.UUID, date slotgrid.Date, lock bool) ([]slotgrid.Booking, error)
	SeriesMembers(ctx context.Context, seriesID uuid.UUID) ([]BookingSnapshot, error)
	OpenRegister(ctx context.Context, establishmentID uuid.UUID) (*SessionSnapshot, error)
	AccountByID(ctx context.Context, id uuid.UUID) (*AccountSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	CancelByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) error
}

type ResourceRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *resource.Resource) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, r *resource.Resource) error
}

type EstablishmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, e *establishment.Establishment) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, e *establishment.Establishment) error
}

type RegisterRepository interface {
	OpenSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) (uuid.UUID, error)
	CloseSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error
	AddMovement(ctx context.Context, tx db.DBTX, m *cashbox.Movement) (uuid.UUID, error)
}

type AccountRepository interface {
	Create(ctx context.Context, tx db.DBTX, a *cashbox.Account) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, tx db.DBTX, a *cashbox.Account) error
	AddEntry(ctx context.Context, tx db.DBTX, accountID uuid.UUID, entryType cashbox.EntryType, amountCents int64, concept string, bookingID *uuid.UUID) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *maintenance.Report) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, r *maintenance.Report) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key with ON CONFLICT DO NOTHING and reports
	// whether this call won the claim.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, bookingID uuid.UUID) error
	ClaimExpiredKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	Create(ctx context.Context, tx db.DBTX, email, passwordHash, role string, establishmentID *uuid.UUID) (uuid.UUID, error)
}
