package reviewservice_test

import (
	"context"
	"testing"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	serviceerrors "libraryapi/internal/service"
	reviewservice "libraryapi/internal/service/review"
	"libraryapi/internal/service/review/mocks"
	"libraryapi/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddReview(t *testing.T) {
	cases := []struct {
		name       string
		review     models.Review
		storageErr error
		wantErrIs  error
	}{
		{
			name:   "Success",
			review: models.Review{BookId: 7, UserId: 10, Rating: 5, Content: "Great read"},
		},
		{
			name:       "Unknown book",
			review:     models.Review{BookId: 404, UserId: 10, Rating: 5},
			storageErr: databaseerrors.ErrNotFound,
			wantErrIs:  serviceerrors.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mocks.Storage)
			stored := tc.review
			stored.Id = 21
			storage.On("AddReview", mock.Anything, tc.review).
				Return(stored, tc.storageErr)

			service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

			review, err := service.AddReview(context.Background(), tc.review)
			if tc.wantErrIs != nil {
				assert.ErrorIs(t, err, tc.wantErrIs)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 21, review.Id)
			}
			storage.AssertExpectations(t)
		})
	}
}

func TestFindReviewsByBookId_PagingValidation(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		limit int
	}{
		{
			name:  "Negative page",
			page:  -1,
			limit: 10,
		},
		{
			name:  "Negative limit",
			page:  0,
			limit: -5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mocks.Storage)
			service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

			_, err := service.FindReviewsByBookId(context.Background(), 7, tc.page, tc.limit)
			assert.ErrorIs(t, err, serviceerrors.ErrInvalidArgument)
			storage.AssertNotCalled(t, "FindReviewsByBookId")
		})
	}
}

func TestFindReviewsByBookId_ZeroLimit(t *testing.T) {
	storage := new(mocks.Storage)
	service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

	page, err := service.FindReviewsByBookId(context.Background(), 7, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, page.Content)
	storage.AssertNotCalled(t, "FindReviewsByBookId")
}

func TestFindReviewsByBookId_Success(t *testing.T) {
	storage := new(mocks.Storage)
	storage.On("FindReviewsByBookId", mock.Anything, 7, 0, 10).
		Return(models.Page[models.Review]{
			Content: []models.Review{{Id: 1, BookId: 7, Rating: 5}},
			Limit:   10,
			Total:   1,
		}, nil)

	service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

	page, err := service.FindReviewsByBookId(context.Background(), 7, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, 1, page.Total)
	storage.AssertExpectations(t)
}

func TestDeleteReviewById(t *testing.T) {
	cases := []struct {
		name       string
		id         int
		storageErr error
		wantErrIs  error
	}{
		{
			name: "Success",
			id:   21,
		},
		{
			name:       "Not found",
			id:         404,
			storageErr: databaseerrors.ErrNotFound,
			wantErrIs:  serviceerrors.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mocks.Storage)
			storage.On("DeleteReviewById", mock.Anything, tc.id).
				Return(models.Review{Id: tc.id}, tc.storageErr)

			service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

			deleted, err := service.DeleteReviewById(context.Background(), tc.id)
			if tc.wantErrIs != nil {
				assert.ErrorIs(t, err, tc.wantErrIs)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.id, deleted.Id)
			}
			storage.AssertExpectations(t)
		})
	}
}

func TestAddReview_ContextCanceled(t *testing.T) {
	storage := new(mocks.Storage)
	service := reviewservice.New(slogdiscard.NewDiscardLogger(), storage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.AddReview(ctx, models.Review{BookId: 7, UserId: 10, Rating: 5})
	assert.ErrorIs(t, err, serviceerrors.ErrContextCanceled)
	storage.AssertNotCalled(t, "AddReview")
}
