package readstore

import (
	"context"

	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/pgconv"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

type EstablishmentReadStore struct {
	db db.DBTX
}

func NewEstablishmentReadStore(dbtx db.DBTX) *EstablishmentReadStore {
	return &EstablishmentReadStore{db: dbtx}
}

func (s *EstablishmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EstablishmentView, error) {
	const query = `
		SELECT id, name, address, open_hour, close_hour, created_at, updated_at
		FROM establishments
		WHERE id = $1`

	var view queries.EstablishmentView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Address, &view.OpenHour, &view.CloseHour,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("establishment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find establishment by ID", err)
	}
	return &view, nil
}

func (s *EstablishmentReadStore) FindAll(ctx context.Context) ([]*queries.EstablishmentView, error) {
	const query = `
		SELECT id, name, address, open_hour, close_hour, created_at, updated_at
		FROM establishments
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list establishments", err)
	}
	defer rows.Close()

	var views []*queries.EstablishmentView
	for rows.Next() {
		var view queries.EstablishmentView
		if err := rows.Scan(
			&view.ID, &view.Name, &view.Address, &view.OpenHour, &view.CloseHour,
			&view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan establishment row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate establishment rows", err)
	}
	return views, nil
}

func (s *EstablishmentReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.EstablishmentSnapshot, error) {
	const query = `
		SELECT id, name, address, open_hour, close_hour
		FROM establishments
		WHERE id = $1`

	var snap shared.EstablishmentSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Name, &snap.Address, &snap.OpenHour, &snap.CloseHour,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("establishment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find establishment snapshot", err)
	}
	return &snap, nil
}
