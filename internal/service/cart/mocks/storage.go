package mocks

import (
	"context"

	"libraryapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *Storage) FindBookById(ctx context.Context, id int) (models.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Book), args.Error(1)
}
func (m *Storage) AddToCart(ctx context.Context, userId int, bookId int) (models.Cart, error) {
	args := m.Called(ctx, userId, bookId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Storage) RemoveFromCart(ctx context.Context, userId int, bookId int) (models.Cart, error) {
	args := m.Called(ctx, userId, bookId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Storage) GetCartBooks(ctx context.Context, userId int) ([]models.Book, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.Book), args.Error(1)
}
func (m *Storage) CartContains(ctx context.Context, userId int, bookId int) (bool, error) {
	args := m.Called(ctx, userId, bookId)
	return args.Bool(0), args.Error(1)
}
