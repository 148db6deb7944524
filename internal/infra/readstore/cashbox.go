package readstore

import (
	"context"

	"courtgrid/internal/infra"
	"courtgrid/internal/infra/db"
	"courtgrid/internal/pkg/pgconv"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterReadStore struct {
	db db.DBTX
}

func NewRegisterReadStore(dbtx db.DBTX) *RegisterReadStore {
	return &RegisterReadStore{db: dbtx}
}

// Session views carry running totals so closing the register can show the
// expected count next to the declared one.
const sessionViewQuery = `
	SELECT s.id, s.establishment_id, s.opened_by, s.opening_cents, s.closing_cents,
	       s.opened_at, s.closed_at,
	       COALESCE(SUM(m.amount_cents) FILTER (WHERE m.kind = 'income'), 0) AS income_cents,
	       COALESCE(SUM(m.amount_cents) FILTER (WHERE m.kind = 'expense'), 0) AS expense_cents
	FROM register_sessions s
	LEFT JOIN register_movements m ON m.session_id = s.id`

func (s *RegisterReadStore) FindSessionByID(ctx context.Context, id uuid.UUID) (*queries.RegisterSessionView, error) {
	query := sessionViewQuery + `
	WHERE s.id = $1
	GROUP BY s.id`

	return s.scanSession(ctx, query, id)
}

func (s *RegisterReadStore) FindOpenSession(ctx context.Context, establishmentID uuid.UUID) (*queries.RegisterSessionView, error) {
	query := sessionViewQuery + `
	WHERE s.establishment_id = $1 AND s.closed_at IS NULL
	GROUP BY s.id`

	return s.scanSession(ctx, query, establishmentID)
}

func (s *RegisterReadStore) scanSession(ctx context.Context, query string, arg any) (*queries.RegisterSessionView, error) {
	var view queries.RegisterSessionView
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&view.ID, &view.EstablishmentID, &view.OpenedBy,
		&view.OpeningCents, &view.ClosingCents,
		&view.OpenedAt, &view.ClosedAt,
		&view.IncomeCents, &view.ExpenseCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("register session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find register session", err)
	}
	view.ExpectedCents = view.OpeningCents + view.IncomeCents - view.ExpenseCents
	return &view, nil
}

func (s *RegisterReadStore) FindMovements(ctx context.Context, sessionID uuid.UUID) ([]*queries.MovementView, error) {
	const query = `
		SELECT id, session_id, kind, concept, amount_cents, method, booking_id, created_at
		FROM register_movements
		WHERE session_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list register movements", err)
	}
	defer rows.Close()

	var views []*queries.MovementView
	for rows.Next() {
		var view queries.MovementView
		if err := rows.Scan(
			&view.ID, &view.SessionID, &view.Type, &view.Concept,
			&view.AmountCents, &view.Method, &view.BookingID, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan movement row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate movement rows", err)
	}
	return views, nil
}

func (s *RegisterReadStore) OpenSessionSnapshot(ctx context.Context, establishmentID uuid.UUID) (*shared.SessionSnapshot, error) {
	const query = `
		SELECT id, establishment_id, opened_by, opening_cents, closing_cents, opened_at, closed_at
		FROM register_sessions
		WHERE establishment_id = $1 AND closed_at IS NULL`

	var snap shared.SessionSnapshot
	err := s.db.QueryRow(ctx, query, establishmentID).Scan(
		&snap.ID, &snap.EstablishmentID, &snap.OpenedBy,
		&snap.OpeningCents, &snap.ClosingCents,
		&snap.OpenedAt, &snap.ClosedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("open register session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find open register session", err)
	}
	return &snap, nil
}

type AccountReadStore struct {
	db db.DBTX
}

func NewAccountReadStore(dbtx db.DBTX) *AccountReadStore {
	return &AccountReadStore{db: dbtx}
}

func (s *AccountReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AccountView, error) {
	const query = `
		SELECT id, establishment_id, client_name, client_phone, balance_cents, created_at, updated_at
		FROM client_accounts
		WHERE id = $1`

	var view queries.AccountView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.EstablishmentID, &view.ClientName, &view.ClientPhone,
		&view.BalanceCents, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("client account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find client account", err)
	}
	return &view, nil
}

func (s *AccountReadStore) FindByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*queries.AccountView, error) {
	const query = `
		SELECT id, establishment_id, client_name, client_phone, balance_cents, created_at, updated_at
		FROM client_accounts
		WHERE establishment_id = $1
		ORDER BY client_name`

	rows, err := s.db.Query(ctx, query, establishmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list client accounts", err)
	}
	defer rows.Close()

	var views []*queries.AccountView
	for rows.Next() {
		var view queries.AccountView
		if err := rows.Scan(
			&view.ID, &view.EstablishmentID, &view.ClientName, &view.ClientPhone,
			&view.BalanceCents, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan account row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate account rows", err)
	}
	return views, nil
}

func (s *AccountReadStore) FindEntries(ctx context.Context, accountID uuid.UUID) ([]*queries.AccountEntryView, error) {
	const query = `
		SELECT id, account_id, kind, concept, amount_cents, booking_id, created_at
		FROM account_entries
		WHERE account_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list account entries", err)
	}
	defer rows.Close()

	var views []*queries.AccountEntryView
	for rows.Next() {
		var view queries.AccountEntryView
		if err := rows.Scan(
			&view.ID, &view.AccountID, &view.Type, &view.Concept,
			&view.AmountCents, &view.BookingID, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan account entry row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate account entry rows", err)
	}
	return views, nil
}

func (s *AccountReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	const query = `
		SELECT id, establishment_id, client_name, client_phone, balance_cents
		FROM client_accounts
		WHERE id = $1
		FOR UPDATE`

	var snap shared.AccountSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.EstablishmentID, &snap.ClientName, &snap.ClientPhone, &snap.BalanceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("client account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find account snapshot", err)
	}
	return &snap, nil
}
