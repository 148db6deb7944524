package commands

import (
	"context"
	"time"

	"courtgrid/internal/domain/maintenance"
	"courtgrid/internal/infra"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReportNotFound = errs.New("maintenance report not found")

type MaintenanceCommands interface {
	Report(ctx context.Context, resourceID, reportedBy uuid.UUID, description string) (uuid.UUID, error)
	Resolve(ctx context.Context, reportID uuid.UUID) error
}

type maintenanceUseCaseImpl struct {
	uow     shared.UnitOfWork
	queries queries.MaintenanceQueries
	clock   clock.Clock
}

func NewMaintenanceUseCase(uow shared.UnitOfWork, q queries.MaintenanceQueries, clk clock.Clock) MaintenanceCommands {
	return &maintenanceUseCaseImpl{uow: uow, queries: q, clock: clk}
}

func (uc *maintenanceUseCaseImpl) Report(ctx context.Context, resourceID, reportedBy uuid.UUID, description string) (uuid.UUID, error) {
	entity, err := maintenance.NewReport(resourceID, reportedBy, description)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var reportID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ResourceByID(ctx, resourceID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		reportID, err = tx.Maintenance().Create(ctx, tx.DB(), entity)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reportID, nil
}

func (uc *maintenanceUseCaseImpl) Resolve(ctx context.Context, reportID uuid.UUID) error {
	view, err := uc.queries.GetByID(ctx, reportID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReportNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity := maintenance.ReconstructReport(
		view.ID, view.ResourceID, view.ReportedBy,
		view.Description,
		view.Resolved, view.ResolvedAt,
		time.Time{},
	)
	if err := entity.Resolve(uc.clock.Now()); err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Maintenance().Update(ctx, tx.DB(), entity)
	})
}
