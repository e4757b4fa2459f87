package mocks

import (
	"context"

	"libraryapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) FindAllBooks(ctx context.Context, page int, limit int) (models.Page[models.Book], error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).(models.Page[models.Book]), args.Error(1)
}
func (m *Service) FindBookById(ctx context.Context, id int) (models.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Book), args.Error(1)
}
func (m *Service) FindBooksByCategory(ctx context.Context, categoryId int, page int, limit int) (models.Page[models.Book], error) {
	args := m.Called(ctx, categoryId, page, limit)
	return args.Get(0).(models.Page[models.Book]), args.Error(1)
}
func (m *Service) FindBooksByTitle(ctx context.Context, pattern string, page int, limit int) (models.Page[models.Book], error) {
	args := m.Called(ctx, pattern, page, limit)
	return args.Get(0).(models.Page[models.Book]), args.Error(1)
}
func (m *Service) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(models.Book), args.Error(1)
}
func (m *Service) UpdateBook(ctx context.Context, book models.Book) (models.Book, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(models.Book), args.Error(1)
}
func (m *Service) DeleteBookById(ctx context.Context, id int) (models.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Book), args.Error(1)
}
