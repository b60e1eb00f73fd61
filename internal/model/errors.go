package model

import "errors"

var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")

	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Session related errors
	ErrSessionNotFound = errors.New("session not found")

	// Catalog, cart and order errors
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOutOfStock       = errors.New("insufficient stock")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)
