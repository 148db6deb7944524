package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/infra/readstore"
	"courtgrid/internal/infra/repository"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo       shared.BookingRepository
	resourceRepo      shared.ResourceRepository
	establishmentRepo shared.EstablishmentRepository
	registerRepo      shared.RegisterRepository
	accountRepo       shared.AccountRepository
	maintenanceRepo   shared.MaintenanceRepository
	idempotencyRepo   shared.IdempotencyRepository
	userRepo          shared.UserRepository
	commandReads      shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository()
	}
	return t.bookingRepo
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resourceRepo == nil {
		t.resourceRepo = repository.NewResourceRepository()
	}
	return t.resourceRepo
}

func (t *pgTx) Establishments() shared.EstablishmentRepository {
	if t.establishmentRepo == nil {
		t.establishmentRepo = repository.NewEstablishmentRepository()
	}
	return t.establishmentRepo
}

func (t *pgTx) Registers() shared.RegisterRepository {
	if t.registerRepo == nil {
		t.registerRepo = repository.NewRegisterRepository()
	}
	return t.registerRepo
}

func (t *pgTx) Accounts() shared.AccountRepository {
	if t.accountRepo == nil {
		t.accountRepo = repository.NewAccountRepository()
	}
	return t.accountRepo
}

func (t *pgTx) Maintenance() shared.MaintenanceRepository {
	if t.maintenanceRepo == nil {
		t.maintenanceRepo = repository.NewMaintenanceRepository()
	}
	return t.maintenanceRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository()
	}
	return t.idempotencyRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository()
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

// commandReads binds the read stores to whichever DBTX the caller holds: a
// transaction inside Within, or the pool for advisory checks outside one.
type commandReads struct {
	dbtx db.DBTX

	bookingStore       *readstore.BookingReadStore
	resourceStore      *readstore.ResourceReadStore
	establishmentStore *readstore.EstablishmentReadStore
	registerStore      *readstore.RegisterReadStore
	accountStore       *readstore.AccountReadStore
	idempotencyStore   *readstore.IdempotencyReadStore
}

func (c *commandReads) bookings() *readstore.BookingReadStore {
	if c.bookingStore == nil {
		c.bookingStore = readstore.NewBookingReadStore(c.dbtx)
	}
	return c.bookingStore
}

func (c *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return c.bookings().SnapshotByID(ctx, id)
}

func (c *commandReads) BookingsForWindow(ctx context.Context, resourceID uuid.UUID, date slotgrid.Date, lock bool) ([]slotgrid.Booking, error) {
	return c.bookings().RecordsForWindow(ctx, resourceID, date, lock)
}

func (c *commandReads) SeriesMembers(ctx context.Context, seriesID uuid.UUID) ([]shared.BookingSnapshot, error) {
	return c.bookings().SeriesSnapshots(ctx, seriesID)
}

func (c *commandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	if c.resourceStore == nil {
		c.resourceStore = readstore.NewResourceReadStore(c.dbtx)
	}
	return c.resourceStore.SnapshotByID(ctx, id)
}

func (c *commandReads) EstablishmentByID(ctx context.Context, id uuid.UUID) (*shared.EstablishmentSnapshot, error) {
	if c.establishmentStore == nil {
		c.establishmentStore = readstore.NewEstablishmentReadStore(c.dbtx)
	}
	return c.establishmentStore.SnapshotByID(ctx, id)
}

func (c *commandReads) OpenRegister(ctx context.Context, establishmentID uuid.UUID) (*shared.SessionSnapshot, error) {
	if c.registerStore == nil {
		c.registerStore = readstore.NewRegisterReadStore(c.dbtx)
	}
	return c.registerStore.OpenSessionSnapshot(ctx, establishmentID)
}

func (c *commandReads) AccountByID(ctx context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	if c.accountStore == nil {
		c.accountStore = readstore.NewAccountReadStore(c.dbtx)
	}
	return c.accountStore.SnapshotByID(ctx, id)
}

func (c *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if c.idempotencyStore == nil {
		c.idempotencyStore = readstore.NewIdempotencyReadStore(c.dbtx)
	}
	return c.idempotencyStore.FindByKey(ctx, key, userID)
}
