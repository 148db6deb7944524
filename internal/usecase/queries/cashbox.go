package queries

import (
	"context"

	"github.com/google/uuid"
)

type RegisterViewRepo interface {
	FindSessionByID(ctx context.Context, id uuid.UUID) (*RegisterSessionView, error)
	FindOpenSession(ctx context.Context, establishmentID uuid.UUID) (*RegisterSessionView, error)
	FindMovements(ctx context.Context, sessionID uuid.UUID) ([]*MovementView, error)
}

type AccountViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountView, error)
	FindByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*AccountView, error)
	FindEntries(ctx context.Context, accountID uuid.UUID) ([]*AccountEntryView, error)
}

type RegisterQueries interface {
	GetSession(ctx context.Context, id uuid.UUID) (*RegisterSessionView, error)
	CurrentSession(ctx context.Context, establishmentID uuid.UUID) (*RegisterSessionView, error)
	Movements(ctx context.Context, sessionID uuid.UUID) ([]*MovementView, error)
}

type AccountQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AccountView, error)
	ListByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*AccountView, error)
	Statement(ctx context.Context, accountID uuid.UUID) ([]*AccountEntryView, error)
}

type registerQueriesImpl struct {
	repo RegisterViewRepo
}

func NewRegisterQueries(repo RegisterViewRepo) RegisterQueries {
	return &registerQueriesImpl{repo: repo}
}

func (q *registerQueriesImpl) GetSession(ctx context.Context, id uuid.UUID) (*RegisterSessionView, error) {
	return q.repo.FindSessionByID(ctx, id)
}

func (q *registerQueriesImpl) CurrentSession(ctx context.Context, establishmentID uuid.UUID) (*RegisterSessionView, error) {
	return q.repo.FindOpenSession(ctx, establishmentID)
}

func (q *registerQueriesImpl) Movements(ctx context.Context, sessionID uuid.UUID) ([]*MovementView, error) {
	return q.repo.FindMovements(ctx, sessionID)
}

type accountQueriesImpl struct {
	repo AccountViewRepo
}

func NewAccountQueries(repo AccountViewRepo) AccountQueries {
	return &accountQueriesImpl{repo: repo}
}

func (q *accountQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AccountView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *accountQueriesImpl) ListByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*AccountView, error) {
	return q.repo.FindByEstablishment(ctx, establishmentID)
}

func (q *accountQueriesImpl) Statement(ctx context.Context, accountID uuid.UUID) ([]*AccountEntryView, error) {
	return q.repo.FindEntries(ctx, accountID)
}
