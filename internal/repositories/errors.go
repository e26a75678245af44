package repositories

import "errors"

// Sentinel errors returned by the storage layer. The API boundary maps
// these to HTTP status codes; everything else is treated as a storage
// failure.
var (
	ErrInvalidID      = errors.New("invalid identifier format")
	ErrPostNotFound   = errors.New("post not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrNGONotFound    = errors.New("ngo not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
