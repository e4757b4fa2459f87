package psql_test

import (
	"context"
	"regexp"
	"testing"

	databaseerrors "libraryapi/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func expectAddToCartFlow(mock sqlmock.Sqlmock, userId, cartId, bookId int, memberRows *sqlmock.Rows) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING")).
		WithArgs(userId).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1 FOR UPDATE")).
		WithArgs(userId).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartId))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart_books (cart_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(cartId, bookId).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM cart_books AS cb JOIN books AS b").
		WithArgs(cartId).
		WillReturnRows(memberRows)
	mock.ExpectCommit()
}

func TestAddToCart_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	expectAddToCartFlow(mock, 10, 3, 7, rows)

	cart, err := storage.AddToCart(context.Background(), 10, 7)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Id)
	assert.Equal(t, 10, cart.UserId)
	assert.Len(t, cart.Books, 1)
	assert.Equal(t, 7, cart.Books[0].Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Adding a book that is already in the cart keeps the membership
// insert a no-op and the cart contents unchanged.
func TestAddToCart_AlreadyPresent(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart_books (cart_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	mock.ExpectQuery("FROM cart_books AS cb JOIN books AS b").
		WithArgs(3).
		WillReturnRows(rows)
	mock.ExpectCommit()

	cart, err := storage.AddToCart(context.Background(), 10, 7)
	assert.NoError(t, err)
	assert.Len(t, cart.Books, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_UnknownBook(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1 FOR UPDATE")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart_books (cart_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(3, 404).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	_, err := storage.AddToCart(context.Background(), 10, 404)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCart_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_books WHERE cart_id=$1 AND book_id=$2")).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 9, "Remaining", 1)
	mock.ExpectQuery("FROM cart_books AS cb JOIN books AS b").
		WithArgs(3).
		WillReturnRows(rows)

	cart, err := storage.RemoveFromCart(context.Background(), 10, 7)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Id)
	assert.Len(t, cart.Books, 1)
	assert.Equal(t, 9, cart.Books[0].Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCart_NoCart(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	cart, err := storage.RemoveFromCart(context.Background(), 10, 7)
	assert.NoError(t, err)
	assert.Equal(t, 10, cart.UserId)
	assert.Empty(t, cart.Books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartBooks_NoCart(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	books, err := storage.GetCartBooks(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartBooks_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM carts WHERE user_id=$1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	bookRow(rows, 9, "Second", 1)
	mock.ExpectQuery("FROM cart_books AS cb JOIN books AS b").
		WithArgs(3).
		WillReturnRows(rows)

	books, err := storage.GetCartBooks(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartContains(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(10, 7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(10, 404).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	contains, err := storage.CartContains(context.Background(), 10, 7)
	assert.NoError(t, err)
	assert.True(t, contains)

	contains, err = storage.CartContains(context.Background(), 10, 404)
	assert.NoError(t, err)
	assert.False(t, contains)

	assert.NoError(t, mock.ExpectationsWereMet())
}
