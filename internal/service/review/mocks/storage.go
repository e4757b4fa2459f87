package mocks

import (
	"context"

	"libraryapi/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) AddReview(ctx context.Context, review models.Review) (models.Review, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(models.Review), args.Error(1)
}
func (m *Storage) FindReviewsByBookId(ctx context.Context, bookId int, page int, limit int) (models.Page[models.Review], error) {
	args := m.Called(ctx, bookId, page, limit)
	return args.Get(0).(models.Page[models.Review]), args.Error(1)
}
func (m *Storage) DeleteReviewById(ctx context.Context, id int) (models.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Review), args.Error(1)
}
