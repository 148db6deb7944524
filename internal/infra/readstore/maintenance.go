package readstore

import (
	"context"

	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/pgconv"
	"courtgrid/internal/usecase/queries"

	"github.com/google/uuid"
)

type MaintenanceReadStore struct {
	db db.DBTX
}

func NewMaintenanceReadStore(dbtx db.DBTX) *MaintenanceReadStore {
	return &MaintenanceReadStore{db: dbtx}
}

func (s *MaintenanceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MaintenanceView, error) {
	const query = `
		SELECT m.id, m.resource_id, r.name, m.reported_by, m.description,
		       m.resolved, m.resolved_at, m.created_at
		FROM maintenance_reports m
		JOIN resources r ON r.id = m.resource_id
		WHERE m.id = $1`

	var view queries.MaintenanceView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.ResourceID, &view.ResourceName, &view.ReportedBy,
		&view.Description, &view.Resolved, &view.ResolvedAt, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("maintenance report not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find maintenance report", err)
	}
	return &view, nil
}

func (s *MaintenanceReadStore) FindOpenByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*queries.MaintenanceView, error) {
	const query = `
		SELECT m.id, m.resource_id, r.name, m.reported_by, m.description,
		       m.resolved, m.resolved_at, m.created_at
		FROM maintenance_reports m
		JOIN resources r ON r.id = m.resource_id
		WHERE r.establishment_id = $1 AND NOT m.resolved
		ORDER BY m.created_at DESC`

	rows, err := s.db.Query(ctx, query, establishmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list maintenance reports", err)
	}
	defer rows.Close()

	var views []*queries.MaintenanceView
	for rows.Next() {
		var view queries.MaintenanceView
		if err := rows.Scan(
			&view.ID, &view.ResourceID, &view.ResourceName, &view.ReportedBy,
			&view.Description, &view.Resolved, &view.ResolvedAt, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan maintenance row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate maintenance rows", err)
	}
	return views, nil
}
