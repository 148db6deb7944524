package commands

import (
	"context"
	"time"

	"courtgrid/internal/domain/cashbox"
	"courtgrid/internal/infra"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRegisterAlreadyOpen = errs.New("register session already open")
	ErrNoOpenRegister      = errs.New("no open register session")
	ErrAccountNotFound     = errs.New("account not found")
)

type AddMovementRequest struct {
	EstablishmentID uuid.UUID
	Type            string
	Concept         string
	AmountCents     int64
	Method          string
	BookingID       *uuid.UUID
}

type RegisterCommands interface {
	Open(ctx context.Context, establishmentID, userID uuid.UUID, openingCents int64) (uuid.UUID, error)
	Close(ctx context.Context, establishmentID uuid.UUID, countedCents int64) error
	AddMovement(ctx context.Context, req AddMovementRequest) (uuid.UUID, error)
}

type AccountCommands interface {
	Create(ctx context.Context, establishmentID uuid.UUID, clientName, clientPhone string) (uuid.UUID, error)
	Charge(ctx context.Context, accountID uuid.UUID, amountCents int64, concept string, bookingID *uuid.UUID) error
	Pay(ctx context.Context, accountID uuid.UUID, amountCents int64, concept string) error
}

type registerUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRegisterUseCase(uow shared.UnitOfWork, clk clock.Clock) RegisterCommands {
	return &registerUseCaseImpl{uow: uow, clock: clk}
}

func (uc *registerUseCaseImpl) Open(
	ctx context.Context,
	establishmentID, userID uuid.UUID,
	openingCents int64,
) (uuid.UUID, error) {
	var sessionID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Reads().OpenRegister(ctx, establishmentID)
		if err == nil {
			return ErrRegisterAlreadyOpen
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		session, err := cashbox.OpenSession(establishmentID, userID, openingCents, uc.clock.Now())
		if err != nil {
			return err
		}
		sessionID, err = tx.Registers().OpenSession(ctx, tx.DB(), session)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sessionID, nil
}

func (uc *registerUseCaseImpl) Close(ctx context.Context, establishmentID uuid.UUID, countedCents int64) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OpenRegister(ctx, establishmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNoOpenRegister
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		session := cashbox.ReconstructSession(
			snap.ID, snap.EstablishmentID, snap.OpenedBy,
			snap.OpeningCents, snap.ClosingCents,
			snap.OpenedAt, snap.ClosedAt,
		)
		if err := session.Close(countedCents, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Registers().CloseSession(ctx, tx.DB(), session)
	})
}

func (uc *registerUseCaseImpl) AddMovement(ctx context.Context, req AddMovementRequest) (uuid.UUID, error) {
	kind, err := cashbox.NewMovementType(req.Type)
	if err != nil {
		return uuid.Nil, err
	}
	method, err := cashbox.NewPaymentMethod(req.Method)
	if err != nil {
		return uuid.Nil, err
	}

	var movementID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OpenRegister(ctx, req.EstablishmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNoOpenRegister
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		movement, err := cashbox.NewMovement(snap.ID, kind, req.Concept, req.AmountCents, method, req.BookingID)
		if err != nil {
			return err
		}
		movementID, err = tx.Registers().AddMovement(ctx, tx.DB(), movement)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return movementID, nil
}

type accountUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewAccountUseCase(uow shared.UnitOfWork) AccountCommands {
	return &accountUseCaseImpl{uow: uow}
}

func (uc *accountUseCaseImpl) Create(
	ctx context.Context,
	establishmentID uuid.UUID,
	clientName, clientPhone string,
) (uuid.UUID, error) {
	account, err := cashbox.NewAccount(establishmentID, clientName, clientPhone)
	if err != nil {
		return uuid.Nil, err
	}

	var accountID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		accountID, err = tx.Accounts().Create(ctx, tx.DB(), account)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return accountID, nil
}

func (uc *accountUseCaseImpl) Charge(
	ctx context.Context,
	accountID uuid.UUID,
	amountCents int64,
	concept string,
	bookingID *uuid.UUID,
) error {
	return uc.mutateAccount(ctx, accountID, func(a *cashbox.Account) error {
		return a.ApplyCharge(amountCents)
	}, cashbox.EntryCharge, amountCents, concept, bookingID)
}

func (uc *accountUseCaseImpl) Pay(
	ctx context.Context,
	accountID uuid.UUID,
	amountCents int64,
	concept string,
) error {
	return uc.mutateAccount(ctx, accountID, func(a *cashbox.Account) error {
		return a.ApplyPayment(amountCents)
	}, cashbox.EntryPayment, amountCents, concept, nil)
}

// mutateAccount applies a balance change and appends the matching statement
// entry in one transaction, so the balance and its ledger never diverge.
func (uc *accountUseCaseImpl) mutateAccount(
	ctx context.Context,
	accountID uuid.UUID,
	apply func(*cashbox.Account) error,
	entryType cashbox.EntryType,
	amountCents int64,
	concept string,
	bookingID *uuid.UUID,
) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AccountByID(ctx, accountID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAccountNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		account := cashbox.ReconstructAccount(
			snap.ID, snap.EstablishmentID,
			snap.ClientName, snap.ClientPhone,
			snap.BalanceCents,
			time.Time{}, time.Time{},
		)
		if err := apply(account); err != nil {
			return err
		}
		if err := tx.Accounts().UpdateBalance(ctx, tx.DB(), account); err != nil {
			return err
		}
		return tx.Accounts().AddEntry(ctx, tx.DB(), accountID, entryType, amountCents, concept, bookingID)
	})
}
