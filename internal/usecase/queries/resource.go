package queries

import (
	"context"

	"github.com/google/uuid"
)

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeInactive bool) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	repo ResourceViewRepo
}

func NewResourceQueries(repo ResourceViewRepo) ResourceQueries {
	return &resourceQueriesImpl{repo: repo}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *resourceQueriesImpl) ListByEstablishment(ctx context.Context, establishmentID uuid.UUID, includeInactive bool) ([]*ResourceView, error) {
	return q.repo.FindByEstablishment(ctx, establishmentID, includeInactive)
}
