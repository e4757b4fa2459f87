package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
)

// GetUserByEmail looks the user up by exact, case-sensitive email match
// and loads its role names.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "database.psql.GetUserByEmail"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var user models.User
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, email, password FROM users
		WHERE email=$1;
	`, email).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error selecting user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT r.role_name FROM roles AS r
		JOIN user_roles AS ur
		ON ur.role_id = r.id
		WHERE ur.user_id=$1;
	`, user.Id)
	if err != nil {
		log.Error("Error selecting user roles", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var roleName string
		if err := rows.Scan(&roleName); err != nil {
			log.Error("Failed to scan role row", sl.Err(err))
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
		user.Roles = append(user.Roles, roleName)
	}
	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// CreateUser inserts a user with an already-hashed password and grants
// it the ROLE_USER role.
func (s *Storage) CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error) {
	const op = "database.psql.CreateUser"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var userId int
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		RETURNING id;
	`, email, hashedPassword).Scan(&userId)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			log.Warn("Email already taken", sl.Err(databaseerrors.ErrEmailTaken))
			return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrEmailTaken)
		}

		log.Error("Error inserting user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE role_name=$2;
	`, userId, "ROLE_USER"); err != nil {
		log.Error("Error granting default role", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.User{
		Id:    userId,
		Email: email,
		Roles: []string{"ROLE_USER"},
	}, nil
}
