package queries

import (
	"context"

	"github.com/google/uuid"
)

type EstablishmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EstablishmentView, error)
	List(ctx context.Context) ([]*EstablishmentView, error)
}

type establishmentQueriesImpl struct {
	repo EstablishmentViewRepo
}

func NewEstablishmentQueries(repo EstablishmentViewRepo) EstablishmentQueries {
	return &establishmentQueriesImpl{repo: repo}
}

func (q *establishmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EstablishmentView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *establishmentQueriesImpl) List(ctx context.Context) ([]*EstablishmentView, error) {
	return q.repo.FindAll(ctx)
}
