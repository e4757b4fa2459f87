package userhandler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/handlers/respond"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
)

type UserService interface {
	Register(ctx context.Context, email string, password string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service UserService
}

func New(log *slog.Logger, service UserService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/v1/user/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.Register"
	log := h.log.With("op", op)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Cannot read request body", sl.Err(err))
		http.Error(w, "Cannot read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req registerRequest
	if err := json.Unmarshal(requestBody, &req); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(req); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusCreated, user)
}

// GET /api/v1/user/{email}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.GetUser"
	log := h.log.With("op", op)

	trimmed := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(trimmed, "/")
	email := parts[len(parts)-1]
	if email == "" || email == "user" {
		log.Error("Email must not be empty")
		http.Error(w, "Email must not be empty", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, user)
}
