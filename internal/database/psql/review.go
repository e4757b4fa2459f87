package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	databaseerrors "libraryapi/internal/database"
	"libraryapi/internal/models"
	"libraryapi/pkg/lib/logger/sl"
)

const reviewColumns = "id, book_id, user_id, rating, content, created_at"

func (s *Storage) AddReview(ctx context.Context, review models.Review) (models.Review, error) {
	const op = "database.psql.AddReview"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Review{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO reviews (book_id, user_id, rating, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`, review.BookId, review.UserId, review.Rating, review.Content).Scan(&review.Id, &review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			log.Warn("Book or user doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Review{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error inserting review", sl.Err(err))
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *Storage) FindReviewsByBookId(ctx context.Context, bookId int, page int, limit int) (models.Page[models.Review], error) {
	const op = "database.psql.FindReviewsByBookId"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.db.QueryRowxContext(ctx, `
		SELECT COUNT(*) FROM reviews WHERE book_id=$1;
	`, bookId).Scan(&total); err != nil {
		log.Error("Error counting reviews", sl.Err(err))
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE book_id=$3
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`, limit, page*limit, bookId)
	if err != nil {
		log.Error("Error selecting reviews", sl.Err(err))
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, limit)
	for rows.Next() {
		var review models.Review
		if err := rows.StructScan(&review); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", sl.Err(err))
		return models.Page[models.Review]{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Page[models.Review]{
		Content: reviews,
		Page:    page,
		Limit:   limit,
		Total:   total,
	}, nil
}

func (s *Storage) DeleteReviewById(ctx context.Context, id int) (models.Review, error) {
	const op = "database.psql.DeleteReviewById"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Review{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var deleted models.Review
	err := s.db.QueryRowxContext(ctx, `
		DELETE FROM reviews
		WHERE id=$1
		RETURNING `+reviewColumns+`;
	`, id).StructScan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Review doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Review{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Error deleting review", sl.Err(err))
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}
