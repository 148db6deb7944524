package repository

import (
	"context"

	"courtgrid/internal/domain/resource"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type ResourceRepository struct{}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{}
}

func (r *ResourceRepository) Create(ctx context.Context, tx db.DBTX, res *resource.Resource) (uuid.UUID, error) {
	const query = `
		INSERT INTO resources (id, establishment_id, name, kind, price_per_hour_cents, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		res.ID(), res.EstablishmentID(), res.Name(), res.Kind(),
		res.PricePerHourCents(), res.Active(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create resource", err)
	}
	return id, nil
}

func (r *ResourceRepository) Update(ctx context.Context, tx db.DBTX, res *resource.Resource) error {
	const query = `
		UPDATE resources
		SET name = $2, price_per_hour_cents = $3, active = $4, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		res.ID(), res.Name(), res.PricePerHourCents(), res.Active(),
	)
	if err != nil {
		return classify("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}
