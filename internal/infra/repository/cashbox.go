package repository

import (
	"context"

	"courtgrid/internal/domain/cashbox"
	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type RegisterRepository struct{}

func NewRegisterRepository() *RegisterRepository {
	return &RegisterRepository{}
}

func (r *RegisterRepository) OpenSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) (uuid.UUID, error) {
	const query = `
		INSERT INTO register_sessions (id, establishment_id, opened_by, opening_cents, opened_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		s.ID(), s.EstablishmentID(), s.OpenedBy(), s.OpeningCents(), s.OpenedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to open register session", err)
	}
	return id, nil
}

func (r *RegisterRepository) CloseSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error {
	const query = `
		UPDATE register_sessions
		SET closing_cents = $2, closed_at = $3
		WHERE id = $1 AND closed_at IS NULL`

	tag, err := tx.Exec(ctx, query, s.ID(), s.ClosingCents(), s.ClosedAt())
	if err != nil {
		return classify("failed to close register session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open register session not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RegisterRepository) AddMovement(ctx context.Context, tx db.DBTX, m *cashbox.Movement) (uuid.UUID, error) {
	const query = `
		INSERT INTO register_movements (id, session_id, kind, concept, amount_cents, method, booking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		m.ID(), m.SessionID(), m.Kind().String(), m.Concept(),
		m.AmountCents(), m.Method().String(), m.BookingID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to record register movement", err)
	}
	return id, nil
}

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) Create(ctx context.Context, tx db.DBTX, a *cashbox.Account) (uuid.UUID, error) {
	const query = `
		INSERT INTO client_accounts (id, establishment_id, client_name, client_phone, balance_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		a.ID(), a.EstablishmentID(), a.ClientName(), a.ClientPhone(), a.BalanceCents(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create client account", err)
	}
	return id, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, tx db.DBTX, a *cashbox.Account) error {
	const query = `
		UPDATE client_accounts
		SET balance_cents = $2, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, a.ID(), a.BalanceCents())
	if err != nil {
		return classify("failed to update account balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("client account not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AccountRepository) AddEntry(
	ctx context.Context,
	tx db.DBTX,
	accountID uuid.UUID,
	entryType cashbox.EntryType,
	amountCents int64,
	concept string,
	bookingID *uuid.UUID,
) error {
	const query = `
		INSERT INTO account_entries (id, account_id, kind, concept, amount_cents, booking_id)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.Exec(ctx, query,
		uuid.New(), accountID, entryType.String(), concept, amountCents, bookingID,
	); err != nil {
		return classify("failed to record account entry", err)
	}
	return nil
}
