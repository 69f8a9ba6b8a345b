// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when the username or password is incorrect.
	// The same error covers both cases so the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("username and password don't match")
)
