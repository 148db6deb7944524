//go:build unit || e2e

package builder

import (
	"courtgrid/internal/domain/user"
	"courtgrid/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email           string
	PasswordHash    string
	Role            string
	EstablishmentID *uuid.UUID
	IsActive        bool
}

func NewUserBuilder() *UserBuilder {
	establishmentID := uuid.New()
	return &UserBuilder{
		Email:           "test@example.com",
		PasswordHash:    "hashed_password",
		Role:            "admin",
		EstablishmentID: &establishmentID,
		IsActive:        true,
	}
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, u.PasswordHash, role, u.EstablishmentID), nil
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:              uuid.New(),
		Email:           u.Email,
		Role:            u.Role,
		EstablishmentID: u.EstablishmentID,
		IsActive:        u.IsActive,
	}
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithoutEstablishment() *UserBuilder {
	u.EstablishmentID = nil
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
