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
func (m *Storage) CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.Get(0).(models.User), args.Error(1)
}
