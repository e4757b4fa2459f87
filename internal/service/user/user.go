package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	serviceerrors "libraryapi/internal/service"
	"libraryapi/pkg/lib/logger/sl"
)

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error)
}

type UserService struct {
	log     *slog.Logger
	storage UserStorage
}

func New(log *slog.Logger, storage UserStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

// Register creates a user with a bcrypt-hashed password and the
// default ROLE_USER role. A duplicate email fails with ErrEmailTaken.
func (u *UserService) Register(ctx context.Context, email string, password string) (models.User, error) {
	const op = "service.user.Register"
	log := u.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := u.storage.CreateUser(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, databaseerrors.ErrEmailTaken) {
			log.Warn("Email already taken", sl.Err(serviceerrors.ErrEmailTaken))
			return models.User{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrEmailTaken)
		}
		return models.User{}, serviceerrors.MapStorageError(log, op, "Failed to create user", err)
	}

	return user, nil
}

// GetByEmail resolves a user by exact, case-sensitive email match.
func (u *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "service.user.GetByEmail"
	log := u.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := u.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("User not found", sl.Err(serviceerrors.ErrUserNotFound))
			return models.User{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrUserNotFound)
		}
		return models.User{}, serviceerrors.MapStorageError(log, op, "Failed to get user", err)
	}

	return user, nil
}
