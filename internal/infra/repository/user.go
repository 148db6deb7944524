package repository

import (
	"context"

	"courtgrid/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	const query = `UPDATE users SET last_login_at = now() WHERE id = $1`

	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return classify("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) Create(
	ctx context.Context,
	tx db.DBTX,
	email, passwordHash, role string,
	establishmentID *uuid.UUID,
) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (id, email, password_hash, role, establishment_id, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, uuid.New(), email, passwordHash, role, establishmentID).Scan(&id)
	if err != nil {
		return uuid.Nil, classify("failed to create user", err)
	}
	return id, nil
}
