package service

import "errors"

// Domain errors. Handlers map them onto HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrDuplicateName      = errors.New("a hospital with this name already exists")
	ErrAlreadyFollowing   = errors.New("already following this campaign")
	ErrNotFollowing       = errors.New("not following this campaign")
	ErrSlugConflict       = errors.New("campaign slug was taken by a concurrent request")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
)
