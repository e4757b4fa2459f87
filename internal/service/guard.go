package serviceerrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"libraryapi/pkg/lib/logger/sl"
)

// CheckContext reports whether ctx is already over, mapped to the
// service error taxonomy.
func CheckContext(ctx context.Context, log *slog.Logger) error {
	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.Canceled) {
			log.Warn("context canceled", sl.Err(err))
			return ErrContextCanceled
		} else if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("deadline exceeded", sl.Err(err))
			return ErrDeadlineExceeded
		}
		log.Error("unexpected error", sl.Err(err))
		return err
	default:
		return nil
	}
}

// MapStorageError wraps a storage failure, translating context errors
// to their service sentinels. Callers handle domain sentinels (not
// found, email taken) before falling through to this.
func MapStorageError(log *slog.Logger, op string, msg string, err error) error {
	if errors.Is(err, context.Canceled) {
		log.Warn("context canceled", sl.Err(ErrContextCanceled))
		return fmt.Errorf("%s: %w", op, ErrContextCanceled)
	} else if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("deadline exceeded", sl.Err(ErrDeadlineExceeded))
		return fmt.Errorf("%s: %w", op, ErrDeadlineExceeded)
	}
	log.Error(msg, sl.Err(err))
	return fmt.Errorf("%s: %w", op, err)
}
