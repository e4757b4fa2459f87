package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
)

// AddToCart inserts the book into the user's cart, creating the cart
// on first use. The cart row is locked for the duration of the
// transaction so concurrent adds for the same user serialize, and the
// membership insert is idempotent.
func (s *Storage) AddToCart(ctx context.Context, userId int, bookId int) (models.Cart, error) {
	const op = "database.psql.AddToCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Cart{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING;
	`, userId); err != nil {
		log.Error("Failed to ensure cart exists", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	var cartId int
	if err := tx.QueryRowxContext(ctx, `
		SELECT id FROM carts
		WHERE user_id=$1
		FOR UPDATE;
	`, userId).Scan(&cartId); err != nil {
		log.Error("Failed to lock cart", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cart_books (cart_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`, cartId, bookId); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			log.Warn("Book doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Cart{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to insert cart membership", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	books, err := s.cartBooks(ctx, tx, cartId)
	if err != nil {
		log.Error("Failed to load cart books", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Cart{
		Id:     cartId,
		UserId: userId,
		Books:  books,
	}, nil
}

// RemoveFromCart deletes the membership if present. A missing cart or
// a book that is not a member is a no-op, not an error.
func (s *Storage) RemoveFromCart(ctx context.Context, userId int, bookId int) (models.Cart, error) {
	const op = "database.psql.RemoveFromCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Cart{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var cartId int
	err := s.db.QueryRowxContext(ctx, `
		SELECT id FROM carts
		WHERE user_id=$1;
	`, userId).Scan(&cartId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Cart{UserId: userId, Books: []models.Book{}}, nil
		}

		log.Error("Error checking cart existence", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_books
		WHERE cart_id=$1 AND book_id=$2;
	`, cartId, bookId); err != nil {
		log.Error("Failed to delete cart membership", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	books, err := s.cartBooks(ctx, s.db, cartId)
	if err != nil {
		log.Error("Failed to load cart books", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Cart{
		Id:     cartId,
		UserId: userId,
		Books:  books,
	}, nil
}

func (s *Storage) GetCartBooks(ctx context.Context, userId int) ([]models.Book, error) {
	const op = "database.psql.GetCartBooks"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var cartId int
	err := s.db.QueryRowxContext(ctx, `
		SELECT id FROM carts
		WHERE user_id=$1;
	`, userId).Scan(&cartId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.Book{}, nil
		}

		log.Error("Error checking cart existence", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	books, err := s.cartBooks(ctx, s.db, cartId)
	if err != nil {
		log.Error("Failed to load cart books", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (s *Storage) CartContains(ctx context.Context, userId int, bookId int) (bool, error) {
	const op = "database.psql.CartContains"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var contains bool
	err := s.db.QueryRowxContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM cart_books AS cb
			JOIN carts AS c
			ON c.id = cb.cart_id
			WHERE c.user_id=$1 AND cb.book_id=$2
		);
	`, userId, bookId).Scan(&contains)
	if err != nil {
		log.Error("Error checking cart membership", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return contains, nil
}

func (s *Storage) cartBooks(ctx context.Context, q sqlx.QueryerContext, cartId int) ([]models.Book, error) {
	rows, err := q.QueryxContext(ctx, `
		SELECT b.id, b.title, b.author, b.description, b.price, b.quantity, b.image_url, b.category_id
		FROM cart_books AS cb
		JOIN books AS b
		ON cb.book_id = b.id
		WHERE cb.cart_id=$1
		ORDER BY b.id;
	`, cartId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]models.Book, 0, 10)
	for rows.Next() {
		var book models.Book
		if err := rows.StructScan(&book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}
