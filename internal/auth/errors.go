package auth

import "errors"

// Sentinel errors for the three auth operations. Handlers map these
// onto status codes; anything wrapping ErrDirectory means the user
// store itself failed and is a 500, not a bad request.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDirectory          = errors.New("user directory error")
)
