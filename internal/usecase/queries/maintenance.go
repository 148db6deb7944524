package queries

import (
	"context"

	"github.com/google/uuid"
)

type MaintenanceViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceView, error)
	FindOpenByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*MaintenanceView, error)
}

type MaintenanceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceView, error)
	ListOpen(ctx context.Context, establishmentID uuid.UUID) ([]*MaintenanceView, error)
}

type maintenanceQueriesImpl struct {
	repo MaintenanceViewRepo
}

func NewMaintenanceQueries(repo MaintenanceViewRepo) MaintenanceQueries {
	return &maintenanceQueriesImpl{repo: repo}
}

func (q *maintenanceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *maintenanceQueriesImpl) ListOpen(ctx context.Context, establishmentID uuid.UUID) ([]*MaintenanceView, error) {
	return q.repo.FindOpenByEstablishment(ctx, establishmentID)
}
