package repository

import (
	"context"

	"courtgrid/internal/domain/establishment"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type EstablishmentRepository struct{}

func NewEstablishmentRepository() *EstablishmentRepository {
	return &EstablishmentRepository{}
}

func (r *EstablishmentRepository) Create(ctx context.Context, tx db.DBTX, e *establishment.Establishment) (uuid.UUID, error) {
	const query = `
		INSERT INTO establishments (id, name, address, open_hour, close_hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		e.ID(), e.Name(), e.Address(), e.Window().OpenHour, e.Window().CloseHour,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create establishment", err)
	}
	return id, nil
}

func (r *EstablishmentRepository) Update(ctx context.Context, tx db.DBTX, e *establishment.Establishment) error {
	const query = `
		UPDATE establishments
		SET name = $2, open_hour = $3, close_hour = $4, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		e.ID(), e.Name(), e.Window().OpenHour, e.Window().CloseHour,
	)
	if err != nil {
		return classify("failed to update establishment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("establishment not found", nil, infra.KindNotFound)
	}
	return nil
}
