package urlparser

import (
	"errors"
	"strconv"
	"strings"
)

type CartPathParams struct {
	UserEmail string
	BookId    int
}

// ParseCartPath parses /api/v1/cart/... paths:
//
//	/api/v1/cart/{userEmail}
//	/api/v1/cart/{userEmail}/{bookId}
//	/api/v1/cart/include/{userEmail}/{bookId}
func ParseCartPath(path string) (CartPathParams, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	params := CartPathParams{}

	if len(parts) < 4 || parts[0] != "api" || parts[1] != "v1" || parts[2] != "cart" {
		return params, errors.New("invalid path, expected /api/v1/cart/...")
	}

	switch len(parts) {
	case 4:
		if parts[3] == "" {
			return params, errors.New("userEmail must not be empty")
		}
		params.UserEmail = parts[3]
		return params, nil
	case 5:
		bookId, err := strconv.Atoi(parts[4])
		if err != nil {
			return params, errors.New("invalid bookId, must be int")
		}
		params.UserEmail = parts[3]
		params.BookId = bookId
		return params, nil
	case 6:
		if parts[3] != "include" {
			return params, errors.New("invalid path, expected /api/v1/cart/include/{userEmail}/{bookId}")
		}
		bookId, err := strconv.Atoi(parts[5])
		if err != nil {
			return params, errors.New("invalid bookId, must be int")
		}
		params.UserEmail = parts[4]
		params.BookId = bookId
		return params, nil

	default:
		return params, errors.New("wrong url format")
	}
}

// LastIdSegment parses the trailing numeric path segment,
// e.g. the bookId in /api/v1/book/{bookId}.
func LastIdSegment(path string) (int, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, errors.New("invalid id, must be int")
	}
	return id, nil
}
