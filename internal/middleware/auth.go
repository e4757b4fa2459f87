package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
	"libraryapi/pkg/lib/urlparser"
)

// HeaderUserEmail carries the authenticated principal, set by the
// upstream auth proxy. Authentication itself happens outside this
// service.
const HeaderUserEmail = "X-User-Email"

type PrincipalResolver interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type RoleChecker struct {
	log     *slog.Logger
	storage PrincipalResolver
}

func NewRoleChecker(log *slog.Logger, storage PrincipalResolver) *RoleChecker {
	return &RoleChecker{
		log:     log,
		storage: storage,
	}
}

// RequireCartAccess gates cart endpoints: the principal must exist,
// hold the given role, and match the {userEmail} path parameter, so a
// user can only touch their own cart.
func (rc *RoleChecker) RequireCartAccess(role string, next http.HandlerFunc) http.HandlerFunc {
	const op = "middleware.RequireCartAccess"

	return func(w http.ResponseWriter, r *http.Request) {
		log := rc.log.With("op", op)

		email := r.Header.Get(HeaderUserEmail)
		if email == "" {
			log.Warn("Missing principal header")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		principal, err := rc.storage.GetUserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, databaseerrors.ErrNotFound) {
				log.Warn("Unknown principal", slog.String("email", email))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			log.Error("Failed to resolve principal", sl.Err(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !slices.Contains(principal.Roles, role) {
			log.Warn("Principal lacks required role",
				slog.String("email", email),
				slog.String("role", role),
			)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if params, err := urlparser.ParseCartPath(r.URL.Path); err == nil {
			if params.UserEmail != principal.Email {
				log.Warn("Principal doesn't own this cart",
					slog.String("principal", principal.Email),
					slog.String("cart owner", params.UserEmail),
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}

		next(w, r)
	}
}
