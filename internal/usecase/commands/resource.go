package commands

import (
	"context"
	"time"

	"courtgrid/internal/domain/resource"
	"courtgrid/internal/infra"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	EstablishmentID   uuid.UUID
	Name              string
	Kind              string
	PricePerHourCents int64
}

type UpdateResourceRequest struct {
	Name              string
	PricePerHourCents int64
	Active            bool
}

type ResourceCommands interface {
	Create(ctx context.Context, req CreateResourceRequest) (uuid.UUID, error)
	Update(ctx context.Context, resourceID uuid.UUID, req UpdateResourceRequest) error
	Deactivate(ctx context.Context, resourceID uuid.UUID) error
}

type resourceUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewResourceUseCase(uow shared.UnitOfWork) ResourceCommands {
	return &resourceUseCaseImpl{uow: uow}
}

func (uc *resourceUseCaseImpl) Create(ctx context.Context, req CreateResourceRequest) (uuid.UUID, error) {
	entity, err := resource.NewResource(req.EstablishmentID, req.Name, req.Kind, req.PricePerHourCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var resourceID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().EstablishmentByID(ctx, req.EstablishmentID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrEstablishmentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		resourceID, err = tx.Resources().Create(ctx, tx.DB(), entity)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return resourceID, nil
}

func (uc *resourceUseCaseImpl) Update(ctx context.Context, resourceID uuid.UUID, req UpdateResourceRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ResourceByID(ctx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := resource.ReconstructResource(
			snap.ID, snap.EstablishmentID,
			snap.Name, snap.Kind,
			snap.PricePerHourCents,
			snap.Active,
			time.Time{}, time.Time{},
		)
		if err := entity.Rename(req.Name); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := entity.SetPrice(req.PricePerHourCents); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if req.Active {
			entity.Activate()
		} else {
			entity.Deactivate()
		}
		return tx.Resources().Update(ctx, tx.DB(), entity)
	})
}

func (uc *resourceUseCaseImpl) Deactivate(ctx context.Context, resourceID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ResourceByID(ctx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := resource.ReconstructResource(
			snap.ID, snap.EstablishmentID,
			snap.Name, snap.Kind,
			snap.PricePerHourCents,
			snap.Active,
			time.Time{}, time.Time{},
		)
		entity.Deactivate()
		return tx.Resources().Update(ctx, tx.DB(), entity)
	})
}
