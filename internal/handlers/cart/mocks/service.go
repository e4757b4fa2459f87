package mocks

import (
	"context"

	"libraryapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) AddToCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error) {
	args := m.Called(ctx, userEmail, bookId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) RemoveFromCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error) {
	args := m.Called(ctx, userEmail, bookId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) GetAllCartItems(ctx context.Context, userEmail string) ([]models.Book, error) {
	args := m.Called(ctx, userEmail)
	return args.Get(0).([]models.Book), args.Error(1)
}
func (m *Service) ContainsCartItem(ctx context.Context, userEmail string, bookId int) (bool, error) {
	args := m.Called(ctx, userEmail, bookId)
	return args.Bool(0), args.Error(1)
}
