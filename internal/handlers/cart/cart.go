package carthandler

import (
	"context"
	"log/slog"
	"net/http"

	"libraryapi/internal/handlers/respond"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
	"libraryapi/pkg/lib/urlparser"
)

type CartService interface {
	AddToCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error)
	RemoveFromCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error)
	GetAllCartItems(ctx context.Context, userEmail string) ([]models.Book, error)
	ContainsCartItem(ctx context.Context, userEmail string, bookId int) (bool, error)
}

type Handler struct {
	log     *slog.Logger
	service CartService
}

func New(log *slog.Logger, service CartService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// POST /api/v1/cart/{userEmail}/{bookId}
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddToCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Invalid cart path", sl.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), params.UserEmail, params.BookId)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, cart)
}

// DELETE /api/v1/cart/{userEmail}/{bookId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.RemoveFromCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Invalid cart path", sl.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.service.RemoveFromCart(r.Context(), params.UserEmail, params.BookId)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, cart)
}

// GET /api/v1/cart/{userEmail}
func (h *Handler) GetAllCartItems(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.GetAllCartItems"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Invalid cart path", sl.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	books, err := h.service.GetAllCartItems(r.Context(), params.UserEmail)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, books)
}

// POST /api/v1/cart/include/{userEmail}/{bookId}
func (h *Handler) ContainsCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ContainsCartItem"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Invalid cart path", sl.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contains, err := h.service.ContainsCartItem(r.Context(), params.UserEmail, params.BookId)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, contains)
}
