package database

import "errors"

var (
	// ErrShortCodeExists is returned when an attempt is made to create
	// a new shortened URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when an attempt is made to retrieve
	// a URL using a short code or long URL that doesn't exist.
	ErrURLNotFound = errors.New("url not found")
	// ErrUserExists is returned when an attempt is made to register
	// a user with an email that is already taken.
	ErrUserExists = errors.New("user exists")
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenNotFound is returned when no user matches the given
	// activation or reset token, or the token has expired.
	ErrTokenNotFound = errors.New("token not found")
)
