package user

import "errors"

var (
	ErrEmailExists              = errors.New("Email already exists")
	ErrInvalidCredentials       = errors.New("Invalid credentials")
	ErrUserNotFound             = errors.New("User not found")
	ErrCurrentPasswordRequired  = errors.New("Current password is required")
	ErrCurrentPasswordIncorrect = errors.New("Current password is incorrect")
	ErrInvalidRole              = errors.New("Role must be user or admin")
	ErrMissingFields            = errors.New("Name, email and password are required")
	ErrIncompleteAddress        = errors.New("Address is incomplete")
)
