package psql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/database/psql"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/slogdiscard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var bookCols = []string{"id", "title", "author", "description", "price", "quantity", "image_url", "category_id"}

func newTestStorage(t *testing.T) (*psql.Storage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %s", err)
	}

	storage := psql.NewWithParams(slogdiscard.NewDiscardLogger(), sqlx.NewDb(db, "sqlmock"))
	cleanup := func() { db.Close() }
	return storage, mock, cleanup
}

func bookRow(rows *sqlmock.Rows, id int, title string, categoryId int) *sqlmock.Rows {
	return rows.AddRow(id, title, "Author", "", 9.99, 1, "", categoryId)
}

func TestFindAllBooks_ContextCanceled(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := storage.FindAllBooks(ctx, 0, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindAllBooks_DeadlineExceeded(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	time.Sleep(time.Millisecond * 55)
	_, err := storage.FindAllBooks(ctx, 0, 10)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindAllBooks_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 1, "First", 1)
	bookRow(rows, 2, "Second", 1)
	mock.ExpectQuery("SELECT id, title, author, description, price, quantity, image_url, category_id FROM books ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 0).
		WillReturnRows(rows)

	page, err := storage.FindAllBooks(context.Background(), 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Content[0].Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 15 books in category 2: page 1 with limit 10 asks for offset 10 and
// gets the trailing 5.
func TestFindBooksByCategory_SecondPage(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books WHERE category_id=$1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	rows := sqlmock.NewRows(bookCols)
	for id := 11; id <= 15; id++ {
		bookRow(rows, id, "Book", 2)
	}
	mock.ExpectQuery("FROM books WHERE category_id=\\$3 ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 10, 2).
		WillReturnRows(rows)

	page, err := storage.FindBooksByCategory(context.Background(), 2, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Content, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBooksByCategory_OutOfRangePage(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books WHERE category_id=$1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	mock.ExpectQuery("FROM books WHERE category_id=\\$3 ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 90, 2).
		WillReturnRows(sqlmock.NewRows(bookCols))

	page, err := storage.FindBooksByCategory(context.Background(), 2, 9, 10)
	assert.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBooksByTitle_PreparedPattern(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books WHERE title LIKE $1")).
		WithArgs("%Harry%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	mock.ExpectQuery("FROM books WHERE title LIKE \\$3 ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 0, "%Harry%").
		WillReturnRows(rows)

	page, err := storage.FindBooksByTitle(context.Background(), "%Harry%", 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, "Harry Potter", page.Content[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookById_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	mock.ExpectQuery("FROM books WHERE id=\\$1").
		WithArgs(7).
		WillReturnRows(rows)

	book, err := storage.FindBookById(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, book.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBookById_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery("FROM books WHERE id=\\$1").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := storage.FindBookById(context.Background(), 404)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBook_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
		WithArgs("New Book", "Author", "", 9.99, 3, "", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	book, err := storage.AddBook(context.Background(), models.Book{
		Title: "New Book", Author: "Author", Price: 9.99, Quantity: 3, CategoryId: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 42, book.Id)
	assert.Equal(t, "New Book", book.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBook_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE books")).
		WithArgs(404, "Ghost", "Nobody", "", 0.0, 0, "", 0).
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := storage.UpdateBook(context.Background(), models.Book{Id: 404, Title: "Ghost", Author: "Nobody"})
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookById_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows(bookCols)
	bookRow(rows, 7, "Harry Potter", 2)
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM books WHERE id=$1")).
		WithArgs(7).
		WillReturnRows(rows)

	deleted, err := storage.DeleteBookById(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, deleted.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookById_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM books WHERE id=$1")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := storage.DeleteBookById(context.Background(), 404)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
