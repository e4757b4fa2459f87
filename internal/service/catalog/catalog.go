package catalogservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	serviceerrors "libraryapi/internal/service"
	"libraryapi/pkg/lib/logger/sl"
)

type BookStorage interface {
	FindAllBooks(ctx context.Context, page int, limit int) (models.Page[models.Book], error)
	FindBookById(ctx context.Context, id int) (models.Book, error)
	FindBooksByCategory(ctx context.Context, categoryId int, page int, limit int) (models.Page[models.Book], error)
	FindBooksByTitle(ctx context.Context, pattern string, page int, limit int) (models.Page[models.Book], error)
	AddBook(ctx context.Context, book models.Book) (models.Book, error)
	UpdateBook(ctx context.Context, book models.Book) (models.Book, error)
	DeleteBookById(ctx context.Context, id int) (models.Book, error)
}

type CatalogService struct {
	log     *slog.Logger
	storage BookStorage
}

func New(log *slog.Logger, storage BookStorage) *CatalogService {
	return &CatalogService{
		log:     log,
		storage: storage,
	}
}

// checkPaging rejects negative paging parameters. A limit of zero is
// valid and yields an empty page without touching the storage.
func checkPaging(page int, limit int) error {
	if page < 0 || limit < 0 {
		return serviceerrors.ErrInvalidArgument
	}
	return nil
}

func emptyBookPage(page int, limit int) models.Page[models.Book] {
	return models.Page[models.Book]{
		Content: []models.Book{},
		Page:    page,
		Limit:   limit,
	}
}

func (c *CatalogService) FindAllBooks(ctx context.Context, page int, limit int) (models.Page[models.Book], error) {
	const op = "service.catalog.FindAllBooks"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkPaging(page, limit); err != nil {
		log.Warn("Invalid paging parameters", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}
	if limit == 0 {
		return emptyBookPage(page, limit), nil
	}

	booksPage, err := c.storage.FindAllBooks(ctx, page, limit)
	if err != nil {
		return models.Page[models.Book]{}, serviceerrors.MapStorageError(log, op, "Failed to list books", err)
	}

	return booksPage, nil
}

func (c *CatalogService) FindBookById(ctx context.Context, id int) (models.Book, error) {
	const op = "service.catalog.FindBookById"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	book, err := c.storage.FindBookById(ctx, id)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			return models.Book{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
		}
		return models.Book{}, serviceerrors.MapStorageError(log, op, "Failed to get book", err)
	}

	return book, nil
}

func (c *CatalogService) FindBooksByCategory(ctx context.Context, categoryId int, page int, limit int) (models.Page[models.Book], error) {
	const op = "service.catalog.FindBooksByCategory"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkPaging(page, limit); err != nil {
		log.Warn("Invalid paging parameters", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}
	if limit == 0 {
		return emptyBookPage(page, limit), nil
	}

	booksPage, err := c.storage.FindBooksByCategory(ctx, categoryId, page, limit)
	if err != nil {
		return models.Page[models.Book]{}, serviceerrors.MapStorageError(log, op, "Failed to list books by category", err)
	}

	return booksPage, nil
}

// FindBooksByTitle treats pattern as an already-prepared LIKE pattern.
// The caller wraps the raw title in wildcards; this method never does.
func (c *CatalogService) FindBooksByTitle(ctx context.Context, pattern string, page int, limit int) (models.Page[models.Book], error) {
	const op = "service.catalog.FindBooksByTitle"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkPaging(page, limit); err != nil {
		log.Warn("Invalid paging parameters", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}
	if limit == 0 {
		return emptyBookPage(page, limit), nil
	}

	booksPage, err := c.storage.FindBooksByTitle(ctx, pattern, page, limit)
	if err != nil {
		return models.Page[models.Book]{}, serviceerrors.MapStorageError(log, op, "Failed to search books by title", err)
	}

	return booksPage, nil
}

func (c *CatalogService) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "service.catalog.AddBook"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := c.storage.AddBook(ctx, book)
	if err != nil {
		return models.Book{}, serviceerrors.MapStorageError(log, op, "Failed to add book", err)
	}

	return stored, nil
}

func (c *CatalogService) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "service.catalog.UpdateBook"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := c.storage.UpdateBook(ctx, book)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Book not found", sl.Err(serviceerrors.ErrNotFound))
			return models.Book{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
		}
		return models.Book{}, serviceerrors.MapStorageError(log, op, "Failed to update book", err)
	}

	return updated, nil
}

func (c *CatalogService) DeleteBookById(ctx context.Context, id int) (models.Book, error) {
	const op = "service.catalog.DeleteBookById"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := c.storage.DeleteBookById(ctx, id)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Book not found", sl.Err(serviceerrors.ErrNotFound))
			return models.Book{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
		}
		return models.Book{}, serviceerrors.MapStorageError(log, op, "Failed to delete book", err)
	}

	return deleted, nil
}

