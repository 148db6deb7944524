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

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	const query = `
		SELECT id, establishment_id, name, kind, price_per_hour_cents, active, created_at, updated_at
		FROM resources
		WHERE id = $1`

	var view queries.ResourceView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.EstablishmentID, &view.Name, &view.Kind,
		&view.PricePerHourCents, &view.Active, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return &view, nil
}

func (s *ResourceReadStore) FindByEstablishment(
	ctx context.Context,
	establishmentID uuid.UUID,
	includeInactive bool,
) ([]*queries.ResourceView, error) {
	query := `
		SELECT id, establishment_id, name, kind, price_per_hour_cents, active, created_at, updated_at
		FROM resources
		WHERE establishment_id = $1`
	if !includeInactive {
		query += " AND active"
	}
	// Courts sort before amenities, then by name, mirroring the planner
	// column order operators expect.
	query += " ORDER BY (kind = 'amenity'), name"

	rows, err := s.db.Query(ctx, query, establishmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var views []*queries.ResourceView
	for rows.Next() {
		var view queries.ResourceView
		if err := rows.Scan(
			&view.ID, &view.EstablishmentID, &view.Name, &view.Kind,
			&view.PricePerHourCents, &view.Active, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource rows", err)
	}
	return views, nil
}

func (s *ResourceReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, establishment_id, name, kind, price_per_hour_cents, active
		FROM resources
		WHERE id = $1`

	var snap shared.ResourceSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.EstablishmentID, &snap.Name, &snap.Kind,
		&snap.PricePerHourCents, &snap.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource snapshot", err)
	}
	return &snap, nil
}
