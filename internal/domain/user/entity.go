package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff identity: an admin, operator, or read-only viewer of an
// establishment's dashboard.
type User struct {
	id              uuid.UUID
	email           Email
	passwordHash    string
	role            Role
	establishmentID *uuid.UUID
	lastLogin       *time.Time
	isActive        bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewUser(email Email, passwordHash string, role Role, establishmentID *uuid.UUID) *User {
	return &User{
		id:              uuid.New(),
		email:           email,
		passwordHash:    passwordHash,
		role:            role,
		establishmentID: establishmentID,
		isActive:        true,
	}
}

func (u *User) ID() uuid.UUID               { return u.id }
func (u *User) Email() Email                { return u.email }
func (u *User) PasswordHash() string        { return u.passwordHash }
func (u *User) Role() Role                  { return u.role }
func (u *User) EstablishmentID() *uuid.UUID { return u.establishmentID }
func (u *User) LastLogin() *time.Time       { return u.lastLogin }
func (u *User) IsActive() bool              { return u.isActive }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }
