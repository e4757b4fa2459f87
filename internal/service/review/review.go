package reviewservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	serviceerrors "libraryapi/internal/service"
	"libraryapi/pkg/lib/logger/sl"
)

type ReviewStorage interface {
	AddReview(ctx context.Context, review models.Review) (models.Review, error)
	FindReviewsByBookId(ctx context.Context, bookId int, page int, limit int) (models.Page[models.Review], error)
	DeleteReviewById(ctx context.Context, id int) (models.Review, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewStorage
}

func New(log *slog.Logger, storage ReviewStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
	}
}

func (r *ReviewService) AddReview(ctx context.Context, review models.Review) (models.Review, error) {
	const op = "service.review.AddReview"
	log := r.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := r.storage.AddReview(ctx, review)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Book or user not found", sl.Err(serviceerrors.ErrNotFound))
			return models.Review{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
		}
		return models.Review{}, serviceerrors.MapStorageError(log, op, "Failed to add review", err)
	}

	return stored, nil
}

func (r *ReviewService) FindReviewsByBookId(ctx context.Context, bookId int, page int, limit int) (models.Page[models.Review], error) {
	const op = "service.review.FindReviewsByBookId"
	log := r.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, err)
	}

	if page < 0 || limit < 0 {
		log.Warn("Invalid paging parameters", sl.Err(serviceerrors.ErrInvalidArgument))
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrInvalidArgument)
	}
	if limit == 0 {
		return models.Page[models.Review]{
			Content: []models.Review{},
			Page:    page,
			Limit:   limit,
		}, nil
	}

	reviewsPage, err := r.storage.FindReviewsByBookId(ctx, bookId, page, limit)
	if err != nil {
		return models.Page[models.Review]{}, serviceerrors.MapStorageError(log, op, "Failed to list reviews", err)
	}

	return reviewsPage, nil
}

func (r *ReviewService) DeleteReviewById(ctx context.Context, id int) (models.Review, error) {
	const op = "service.review.DeleteReviewById"
	log := r.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := r.storage.DeleteReviewById(ctx, id)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Review not found", sl.Err(serviceerrors.ErrNotFound))
			return models.Review{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
		}
		return models.Review{}, serviceerrors.MapStorageError(log, op, "Failed to delete review", err)
	}

	return deleted, nil
}
