package cartservice

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

type CartStorage interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	FindBookById(ctx context.Context, id int) (models.Book, error)
	AddToCart(ctx context.Context, userId int, bookId int) (models.Cart, error)
	RemoveFromCart(ctx context.Context, userId int, bookId int) (models.Cart, error)
	GetCartBooks(ctx context.Context, userId int) ([]models.Book, error)
	CartContains(ctx context.Context, userId int, bookId int) (bool, error)
}

// CartService maintains the user-to-books relation with set semantics.
// All four operations are idempotent with respect to repeated
// identical calls.
type CartService struct {
	log     *slog.Logger
	storage CartStorage
}

func New(log *slog.Logger, storage CartStorage) *CartService {
	return &CartService{
		log:     log,
		storage: storage,
	}
}

// AddToCart puts the book into the user's cart, creating the cart on
// first use. Adding a book that is already a member is a no-op and
// returns the cart unchanged.
func (c *CartService) AddToCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error) {
	const op = "service.cart.AddToCart"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := c.resolveUser(ctx, log, op, userEmail)
	if err != nil {
		return models.Cart{}, err
	}

	if _, err := c.storage.FindBookById(ctx, bookId); err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Book not found", sl.Err(serviceerrors.ErrBookNotFound))
			return models.Cart{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrBookNotFound)
		}
		return models.Cart{}, serviceerrors.MapStorageError(log, op, "Failed to resolve book", err)
	}

	cart, err := c.storage.AddToCart(ctx, user.Id, bookId)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Book not found", sl.Err(serviceerrors.ErrBookNotFound))
			return models.Cart{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrBookNotFound)
		}
		return models.Cart{}, serviceerrors.MapStorageError(log, op, "Failed to add book to cart", err)
	}

	return cart, nil
}

// RemoveFromCart takes the book out of the user's cart. A missing cart
// or a book that is not a member is a no-op, not an error.
func (c *CartService) RemoveFromCart(ctx context.Context, userEmail string, bookId int) (models.Cart, error) {
	const op = "service.cart.RemoveFromCart"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := c.resolveUser(ctx, log, op, userEmail)
	if err != nil {
		return models.Cart{}, err
	}

	cart, err := c.storage.RemoveFromCart(ctx, user.Id, bookId)
	if err != nil {
		return models.Cart{}, serviceerrors.MapStorageError(log, op, "Failed to remove book from cart", err)
	}

	return cart, nil
}

// GetAllCartItems returns the books currently in the user's cart,
// empty when the user has no cart yet.
func (c *CartService) GetAllCartItems(ctx context.Context, userEmail string) ([]models.Book, error) {
	const op = "service.cart.GetAllCartItems"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := c.resolveUser(ctx, log, op, userEmail)
	if err != nil {
		return nil, err
	}

	books, err := c.storage.GetCartBooks(ctx, user.Id)
	if err != nil {
		return nil, serviceerrors.MapStorageError(log, op, "Failed to get cart books", err)
	}

	return books, nil
}

// ContainsCartItem reports cart membership. A book id that does not
// exist in the catalog is simply not a member.
func (c *CartService) ContainsCartItem(ctx context.Context, userEmail string, bookId int) (bool, error) {
	const op = "service.cart.ContainsCartItem"
	log := c.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, log); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	user, err := c.resolveUser(ctx, log, op, userEmail)
	if err != nil {
		return false, err
	}

	contains, err := c.storage.CartContains(ctx, user.Id, bookId)
	if err != nil {
		return false, serviceerrors.MapStorageError(log, op, "Failed to check cart membership", err)
	}

	return contains, nil
}

func (c *CartService) resolveUser(ctx context.Context, log *slog.Logger, op string, userEmail string) (models.User, error) {
	user, err := c.storage.GetUserByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("User not found", sl.Err(serviceerrors.ErrUserNotFound))
			return models.User{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrUserNotFound)
		}
		return models.User{}, serviceerrors.MapStorageError(log, op, "Failed to resolve user", err)
	}
	return user, nil
}
