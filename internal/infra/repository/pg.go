package repository

import (
	"errors"
	"time"

	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrUniqueViolation    = "23505"
	pgErrForeignKeyViolated = "23503"
	pgErrExclusionViolated  = "23P01"
)

// classify maps postgres constraint violations onto repository error kinds.
// The bookings table carries an exclusion constraint over
// (resource_id, date, slot range), so a lost race surfaces as CONFLICT here
// even after the advisory check passed.
func classify(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrExclusionViolated:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

func dateToTime(d slotgrid.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
