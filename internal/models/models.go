package models

import "time"

type Book struct {
	Id          int     `json:"id" db:"id"`
	Title       string  `json:"title" db:"title" validate:"required"`
	Author      string  `json:"author" db:"author" validate:"required"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" db:"quantity" validate:"gte=0"`
	ImageURL    string  `json:"image_url" db:"image_url"`
	CategoryId  int     `json:"category_id" db:"category_id"`
}

type User struct {
	Id       int      `json:"id" db:"id"`
	Email    string   `json:"email" db:"email" validate:"required,email"`
	Password string   `json:"-" db:"password"`
	Roles    []string `json:"roles,omitempty"`
}

type Role struct {
	Id       int    `json:"id" db:"id"`
	RoleName string `json:"role_name" db:"role_name"`
}

type Cart struct {
	Id     int    `json:"id" db:"id"`
	UserId int    `json:"user_id" db:"user_id"`
	Books  []Book `json:"books"`
}

type Review struct {
	Id        int       `json:"id" db:"id"`
	BookId    int       `json:"book_id" db:"book_id" validate:"required"`
	UserId    int       `json:"user_id" db:"user_id" validate:"required"`
	Rating    int       `json:"rating" db:"rating" validate:"gte=1,lte=5"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at,omitzero" db:"created_at"`
}

// Page is one bounded slice of a larger ordered result set.
// Page numbers are zero-based.
type Page[T any] struct {
	Content []T `json:"content"`
	Page    int `json:"page"`
	Limit   int `json:"limit"`
	Total   int `json:"total"`
}
