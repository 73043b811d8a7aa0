package domain

import "errors"

// Authentication
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// Conflicts
var (
	ErrUserExists = errors.New("email already registered")
)

// Lookups
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrLikeNotFound     = errors.New("like not found")
)

// Access and input
var (
	ErrForbidden   = errors.New("access forbidden")
	ErrInvalidRole = errors.New("invalid role")
	ErrEmptyPatch  = errors.New("no fields to update")
)
