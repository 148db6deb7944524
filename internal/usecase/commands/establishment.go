package commands

import (
	"context"
	"time"

	"courtgrid/internal/domain/establishment"
	"courtgrid/internal/infra"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEstablishmentNotFound = errs.New("establishment not found")

type CreateEstablishmentRequest struct {
	Name      string
	Address   string
	OpenHour  int
	CloseHour int
}

type UpdateEstablishmentRequest struct {
	Name      string
	OpenHour  int
	CloseHour int
}

type EstablishmentCommands interface {
	Create(ctx context.Context, req CreateEstablishmentRequest) (uuid.UUID, error)
	Update(ctx context.Context, establishmentID uuid.UUID, req UpdateEstablishmentRequest) error
}

type establishmentUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewEstablishmentUseCase(uow shared.UnitOfWork) EstablishmentCommands {
	return &establishmentUseCaseImpl{uow: uow}
}

func (uc *establishmentUseCaseImpl) Create(ctx context.Context, req CreateEstablishmentRequest) (uuid.UUID, error) {
	window, err := establishment.NewWindow(req.OpenHour, req.CloseHour)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	entity, err := establishment.NewEstablishment(req.Name, req.Address, window)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var establishmentID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		establishmentID, err = tx.Establishments().Create(ctx, tx.DB(), entity)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return establishmentID, nil
}

// Update changes the name and operating window. Narrowing the window does
// not touch existing bookings; they simply render outside the grid until
// moved or cancelled.
func (uc *establishmentUseCaseImpl) Update(ctx context.Context, establishmentID uuid.UUID, req UpdateEstablishmentRequest) error {
	window, err := establishment.NewWindow(req.OpenHour, req.CloseHour)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().EstablishmentByID(ctx, establishmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrEstablishmentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		current, werr := establishment.NewWindow(snap.OpenHour, snap.CloseHour)
		if werr != nil {
			return errs.Mark(werr, ErrDomainValidation)
		}
		entity := establishment.ReconstructEstablishment(
			snap.ID, snap.Name, snap.Address,
			current,
			time.Time{}, time.Time{},
		)
		if err := entity.Rename(req.Name); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		entity.SetWindow(window)
		return tx.Establishments().Update(ctx, tx.DB(), entity)
	})
}
