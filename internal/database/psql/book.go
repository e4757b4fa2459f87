package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
)

const bookColumns = "id, title, author, description, price, quantity, image_url, category_id"

func (s *Storage) FindAllBooks(ctx context.Context, page int, limit int) (models.Page[models.Book], error) {
	const op = "database.psql.FindAllBooks"

	return s.bookPage(ctx, op, page, limit, `
		SELECT `+bookColumns+` FROM books
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`, `
		SELECT COUNT(*) FROM books;
	`)
}

func (s *Storage) FindBooksByCategory(ctx context.Context, categoryId int, page int, limit int) (models.Page[models.Book], error) {
	const op = "database.psql.FindBooksByCategory"

	return s.bookPage(ctx, op, page, limit, `
		SELECT `+bookColumns+` FROM books
		WHERE category_id=$3
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`, `
		SELECT COUNT(*) FROM books WHERE category_id=$1;
	`, categoryId)
}

// FindBooksByTitle expects pattern to be a prepared LIKE pattern,
// e.g. "%Harry%". The match is case-sensitive.
func (s *Storage) FindBooksByTitle(ctx context.Context, pattern string, page int, limit int) (models.Page[models.Book], error) {
	const op = "database.psql.FindBooksByTitle"

	return s.bookPage(ctx, op, page, limit, `
		SELECT `+bookColumns+` FROM books
		WHERE title LIKE $3
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`, `
		SELECT COUNT(*) FROM books WHERE title LIKE $1;
	`, pattern)
}

// bookPage runs a paged book query. The data query takes limit as $1,
// offset as $2 and the filter arguments from $3 on; the count query
// takes the filter arguments from $1 on.
func (s *Storage) bookPage(ctx context.Context, op string, page int, limit int, dataQuery string, countQuery string, filterArgs ...any) (models.Page[models.Book], error) {
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.db.QueryRowxContext(ctx, countQuery, filterArgs...).Scan(&total); err != nil {
		log.Error("Error counting books", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}

	args := append([]any{limit, page * limit}, filterArgs...)
	rows, err := s.db.QueryxContext(ctx, dataQuery, args...)
	if err != nil {
		log.Error("Error selecting books", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	books := make([]models.Book, 0, limit)
	for rows.Next() {
		var book models.Book
		if err := rows.StructScan(&book); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", sl.Err(err))
		return models.Page[models.Book]{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Page[models.Book]{
		Content: books,
		Page:    page,
		Limit:   limit,
		Total:   total,
	}, nil
}

func (s *Storage) FindBookById(ctx context.Context, id int) (models.Book, error) {
	const op = "database.psql.FindBookById"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Book{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var book models.Book
	err := s.db.QueryRowxContext(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE id=$1;
	`, id).StructScan(&book)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error selecting book", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Storage) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "database.psql.AddBook"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Book{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO books (title, author, description, price, quantity, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`, book.Title, book.Author, book.Description, book.Price, book.Quantity, book.ImageURL, book.CategoryId).Scan(&book.Id)
	if err != nil {
		log.Error("Error inserting book", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Storage) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "database.psql.UpdateBook"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Book{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var updated models.Book
	err := s.db.QueryRowxContext(ctx, `
		UPDATE books
		SET title=$2, author=$3, description=$4, price=$5, quantity=$6, image_url=$7, category_id=$8
		WHERE id=$1
		RETURNING `+bookColumns+`;
	`, book.Id, book.Title, book.Author, book.Description, book.Price, book.Quantity, book.ImageURL, book.CategoryId).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Book doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Book{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error updating book", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// DeleteBookById removes the book and, through the cart_books foreign
// key cascade, every cart entry that references it.
func (s *Storage) DeleteBookById(ctx context.Context, id int) (models.Book, error) {
	const op = "database.psql.DeleteBookById"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Book{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var deleted models.Book
	err := s.db.QueryRowxContext(ctx, `
		DELETE FROM books
		WHERE id=$1
		RETURNING `+bookColumns+`;
	`, id).StructScan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Book doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Book{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error deleting book", sl.Err(err))
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}
