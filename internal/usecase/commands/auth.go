package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"courtgrid/internal/domain/user"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/pkg/jwt"
	"courtgrid/internal/pkg/password"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type RegisterUserRequest struct {
	Email           string
	Password        string
	Role            string
	EstablishmentID *uuid.UUID
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
	RegisterUser(ctx context.Context, req RegisterUserRequest) (uuid.UUID, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	passwordVO, err := user.NewPassword(rawPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	credentials := user.NewCredentials(emailVO, passwordVO)

	userReadModel, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userReadModel.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateToken(userReadModel.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), userReadModel.ID)
	})
	if err != nil {
		// Not critical: login already succeeded.
		slog.Warn("failed to update last login", "user_id", userReadModel.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:      userReadModel.ID,
		AccessToken: accessToken,
	}, nil
}

func (a *authCommandsImpl) RegisterUser(ctx context.Context, req RegisterUserRequest) (uuid.UUID, error) {
	emailVO, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if _, err := user.NewPassword(req.Password); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	role, err := user.NewRole(req.Role)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID, err = tx.Users().Create(ctx, tx.DB(), emailVO.Value(), hash, role.String(), req.EstablishmentID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userReadModel, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, ErrInvalidCredentials
	}

	if userReadModel == nil {
		return nil, ErrUserNotFound
	}

	if !userReadModel.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userReadModel, nil
}
