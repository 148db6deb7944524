package repository

import (
	"context"
	"time"

	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(
	ctx context.Context,
	tx db.DBTX,
	key, userID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (bool, error) {
	const query = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, classify("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(
	ctx context.Context,
	tx db.DBTX,
	key, userID uuid.UUID,
	bookingID uuid.UUID,
) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', result_booking_id = $3, updated_at = now()
		WHERE key = $1 AND user_id = $2`

	if _, err := tx.Exec(ctx, query, key, userID, bookingID); err != nil {
		return classify("failed to complete idempotency key", err)
	}
	return nil
}

// ClaimExpiredKey re-claims a key whose previous request expired without
// completing. The WHERE guard keeps two concurrent claimants from both
// winning.
func (r *IdempotencyRepository) ClaimExpiredKey(
	ctx context.Context,
	tx db.DBTX,
	key, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (int64, error) {
	const query = `
		UPDATE idempotency_keys
		SET status = 'processing', request_hash = $3, result_booking_id = NULL,
		    expires_at = $4, updated_at = now()
		WHERE key = $1 AND user_id = $2 AND expires_at < now()`

	tag, err := tx.Exec(ctx, query, key, userID, requestHash, expiresAt)
	if err != nil {
		return 0, classify("failed to reclaim idempotency key", err)
	}
	return tag.RowsAffected(), nil
}
