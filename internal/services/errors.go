package services

import "errors"

// Domain failure taxonomy. Services wrap these sentinels so handlers can map
// them to HTTP statuses with errors.Is instead of inspecting persistence
// errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrBadCredentials = errors.New("invalid username or password")
	ErrValidation     = errors.New("invalid input")
)
