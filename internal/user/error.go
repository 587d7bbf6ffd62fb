package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
	ErrInvalidInput       = errors.New("name, email and password are required")
	ErrEmptyProfile       = errors.New("no profile fields to update")
	ErrMissingSecret      = errors.New("jwt secret is not set")
	ErrInvalidToken       = errors.New("invalid token")

	// Postgres unique_violation.
	pgUniqueViolation = "23505"
)
