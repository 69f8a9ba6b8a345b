// Package usecase implements the business logic for the games feature.
package usecase

import "errors"

var (
	// ErrGameNotFound is returned when a game cannot be found by ID or title.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidGame is returned when a game fails field validation.
	// The wrapping error names the offending field.
	ErrInvalidGame = errors.New("invalid game")
)
