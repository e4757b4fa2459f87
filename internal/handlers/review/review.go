package reviewhandler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/handlers/respond"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
	"libraryapi/pkg/lib/urlparser"
)

type ReviewService interface {
	AddReview(ctx context.Context, review models.Review) (models.Review, error)
	FindReviewsByBookId(ctx context.Context, bookId int, page int, limit int) (models.Page[models.Review], error)
	DeleteReviewById(ctx context.Context, id int) (models.Review, error)
}

type Handler struct {
	log     *slog.Logger
	service ReviewService
}

func New(log *slog.Logger, service ReviewService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// POST /api/v1/review
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.AddReview"
	log := h.log.With("op", op)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Cannot read request body", sl.Err(err))
		http.Error(w, "Cannot read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var review models.Review
	if err := json.Unmarshal(requestBody, &review); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(review); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return
	}

	stored, err := h.service.AddReview(r.Context(), review)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusCreated, stored)
}

// GET /api/v1/review/book/{bookId}
func (h *Handler) ListReviewsByBook(w http.ResponseWriter, r *http.Request, sbookId string) {
	const op = "handlers.review.ListReviewsByBook"
	log := h.log.With("op", op)

	bookId, err := strconv.Atoi(sbookId)
	if err != nil {
		log.Error("BookId must be int", sl.Err(err))
		http.Error(w, "BookId must be int", http.StatusBadRequest)
		return
	}

	page, limit := 0, 10
	if s := r.URL.Query().Get("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil {
			log.Error("Page must be int", sl.Err(err))
			http.Error(w, "Page must be int", http.StatusBadRequest)
			return
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			log.Error("Limit must be int", sl.Err(err))
			http.Error(w, "Limit must be int", http.StatusBadRequest)
			return
		}
	}

	reviewsPage, err := h.service.FindReviewsByBookId(r.Context(), bookId, page, limit)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, reviewsPage)
}

// DELETE /api/v1/review/{reviewId}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.DeleteReview"
	log := h.log.With("op", op)

	if strings.Contains(r.URL.Path, "/book/") {
		http.NotFound(w, r)
		return
	}

	id, err := urlparser.LastIdSegment(r.URL.Path)
	if err != nil {
		log.Error("ReviewId must be int", sl.Err(err))
		http.Error(w, "ReviewId must be int", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteReviewById(r.Context(), id)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, deleted)
}
