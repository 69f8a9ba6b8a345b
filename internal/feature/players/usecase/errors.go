// Package usecase implements the business logic for the players feature.
package usecase

import "errors"

var (
	// ErrPlayerNotFound is returned when a player cannot be found by ID, username or email.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrPlayerAlreadyExists is returned when the username or email is already taken.
	ErrPlayerAlreadyExists = errors.New("username or email already taken")

	// ErrInvalidPlayer is returned when a player fails field validation.
	// The wrapping error names the offending field.
	ErrInvalidPlayer = errors.New("invalid player")
)
