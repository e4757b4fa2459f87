package bookhandler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"libraryapi/internal/handlers/respond"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
	"libraryapi/pkg/lib/urlparser"
)

const (
	defaultPage  = 0
	defaultLimit = 10
)

type CatalogService interface {
	FindAllBooks(ctx context.Context, page int, limit int) (models.Page[models.Book], error)
	FindBookById(ctx context.Context, id int) (models.Book, error)
	FindBooksByCategory(ctx context.Context, categoryId int, page int, limit int) (models.Page[models.Book], error)
	FindBooksByTitle(ctx context.Context, pattern string, page int, limit int) (models.Page[models.Book], error)
	AddBook(ctx context.Context, book models.Book) (models.Book, error)
	UpdateBook(ctx context.Context, book models.Book) (models.Book, error)
	DeleteBookById(ctx context.Context, id int) (models.Book, error)
}

type Handler struct {
	log     *slog.Logger
	service CatalogService
}

func New(log *slog.Logger, service CatalogService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /api/v1/book
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.ListBooks"
	log := h.log.With("op", op)

	page, limit, err := pagingParams(r.URL.Query())
	if err != nil {
		log.Error("Invalid paging parameters", sl.Err(err))
		http.Error(w, "Page and limit must be int", http.StatusBadRequest)
		return
	}

	booksPage, err := h.service.FindAllBooks(r.Context(), page, limit)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, booksPage)
}

// GET /api/v1/book/{bookId}
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.GetBook"
	log := h.log.With("op", op)

	id, err := urlparser.LastIdSegment(r.URL.Path)
	if err != nil {
		log.Error("BookId must be int", sl.Err(err))
		http.Error(w, "BookId must be int", http.StatusBadRequest)
		return
	}

	book, err := h.service.FindBookById(r.Context(), id)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, book)
}

// GET /api/v1/book/category/{categoryId}
func (h *Handler) ListBooksByCategory(w http.ResponseWriter, r *http.Request, scategoryId string) {
	const op = "handlers.book.ListBooksByCategory"
	log := h.log.With("op", op)

	categoryId, err := strconv.Atoi(scategoryId)
	if err != nil {
		log.Error("CategoryId must be int", sl.Err(err))
		http.Error(w, "CategoryId must be int", http.StatusBadRequest)
		return
	}

	page, limit, err := pagingParams(r.URL.Query())
	if err != nil {
		log.Error("Invalid paging parameters", sl.Err(err))
		http.Error(w, "Page and limit must be int", http.StatusBadRequest)
		return
	}

	booksPage, err := h.service.FindBooksByCategory(r.Context(), categoryId, page, limit)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, booksPage)
}

// GET /api/v1/book/search/title/{title}
//
// The raw title segment is wrapped in wildcards here, at the API
// boundary. The service expects a prepared pattern and never wraps.
func (h *Handler) SearchBooksByTitle(w http.ResponseWriter, r *http.Request, title string) {
	const op = "handlers.book.SearchBooksByTitle"
	log := h.log.With("op", op)

	page, limit, err := pagingParams(r.URL.Query())
	if err != nil {
		log.Error("Invalid paging parameters", sl.Err(err))
		http.Error(w, "Page and limit must be int", http.StatusBadRequest)
		return
	}

	booksPage, err := h.service.FindBooksByTitle(r.Context(), "%"+title+"%", page, limit)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, booksPage)
}

// POST /api/v1/book
func (h *Handler) AddBook(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.AddBook"
	log := h.log.With("op", op)

	book, ok := h.decodeBook(log, w, r)
	if !ok {
		return
	}

	stored, err := h.service.AddBook(r.Context(), book)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusCreated, stored)
}

// PUT /api/v1/book
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.UpdateBook"
	log := h.log.With("op", op)

	book, ok := h.decodeBook(log, w, r)
	if !ok {
		return
	}

	if book.Id <= 0 {
		log.Error("Book id is required for update")
		http.Error(w, "Book id is required", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateBook(r.Context(), book)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, updated)
}

// DELETE /api/v1/book/{bookId}
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.DeleteBook"
	log := h.log.With("op", op)

	id, err := urlparser.LastIdSegment(r.URL.Path)
	if err != nil {
		log.Error("BookId must be int", sl.Err(err))
		http.Error(w, "BookId must be int", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteBookById(r.Context(), id)
	if err != nil {
		respond.ServiceError(log, w, err)
		return
	}

	respond.JSON(log, w, http.StatusOK, deleted)
}

func (h *Handler) decodeBook(log *slog.Logger, w http.ResponseWriter, r *http.Request) (models.Book, bool) {
	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Cannot read request body", sl.Err(err))
		http.Error(w, "Cannot read request body", http.StatusBadRequest)
		return models.Book{}, false
	}
	defer r.Body.Close()

	var book models.Book
	if err := json.Unmarshal(requestBody, &book); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return models.Book{}, false
	}

	if err := validator.New().Struct(book); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return models.Book{}, false
	}

	return book, true
}

func pagingParams(query url.Values) (int, int, error) {
	page := defaultPage
	limit := defaultLimit

	if s := query.Get("page"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, err
		}
		page = p
	}
	if s := query.Get("limit"); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, err
		}
		limit = l
	}

	return page, limit, nil
}
