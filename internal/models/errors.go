package models

import "errors"

// Domain errors shared by repositories, services and handlers.
// Wrap them with fmt.Errorf("...: %w", err) and test with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrInvalidReference = errors.New("referenced record does not exist")
)
