package readstore

import (
	"context"

	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/pgconv"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (s *IdempotencyReadStore) FindByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const query = `
		SELECT key, user_id, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	var rec shared.IdempotencyRecord
	err := s.db.QueryRow(ctx, query, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash,
		&rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &rec, nil
}
