package repository

import (
	"context"

	"courtgrid/internal/domain/maintenance"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type MaintenanceRepository struct{}

func NewMaintenanceRepository() *MaintenanceRepository {
	return &MaintenanceRepository{}
}

func (r *MaintenanceRepository) Create(ctx context.Context, tx db.DBTX, rep *maintenance.Report) (uuid.UUID, error) {
	const query = `
		INSERT INTO maintenance_reports (id, resource_id, reported_by, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		rep.ID(), rep.ResourceID(), rep.ReportedBy(), rep.Description(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create maintenance report", err)
	}
	return id, nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, tx db.DBTX, rep *maintenance.Report) error {
	const query = `
		UPDATE maintenance_reports
		SET resolved = $2, resolved_at = $3
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, rep.ID(), rep.Resolved(), rep.ResolvedAt())
	if err != nil {
		return classify("failed to update maintenance report", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("maintenance report not found", nil, infra.KindNotFound)
	}
	return nil
}
