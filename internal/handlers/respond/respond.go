package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	serviceerrors "libraryapi/internal/service"
	"libraryapi/pkg/lib/logger/sl"
)

const StatusClientClosedRequest = 499

func JSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", sl.Err(err))
	}
}

// ServiceError maps a service failure to an HTTP status. Storage
// failures never leak verbatim; anything unrecognized becomes a
// generic 500.
func ServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, serviceerrors.ErrContextCanceled):
		log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
		http.Error(w, "Context canceled", StatusClientClosedRequest)
	case errors.Is(err, serviceerrors.ErrDeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
		http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
	case errors.Is(err, serviceerrors.ErrUserNotFound):
		log.Warn("User not found", sl.Err(serviceerrors.ErrUserNotFound))
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, serviceerrors.ErrBookNotFound):
		log.Warn("Book not found", sl.Err(serviceerrors.ErrBookNotFound))
		http.Error(w, "Book not found", http.StatusNotFound)
	case errors.Is(err, serviceerrors.ErrNotFound):
		log.Warn("Not found", sl.Err(serviceerrors.ErrNotFound))
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, serviceerrors.ErrInvalidArgument):
		log.Warn("Invalid argument", sl.Err(serviceerrors.ErrInvalidArgument))
		http.Error(w, "Invalid argument", http.StatusBadRequest)
	case errors.Is(err, serviceerrors.ErrEmailTaken):
		log.Warn("Email already taken", sl.Err(serviceerrors.ErrEmailTaken))
		http.Error(w, "Email already taken", http.StatusConflict)
	default:
		log.Error("Internal error", sl.Err(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
