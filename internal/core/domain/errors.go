package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrIncidentNotFound = errors.New("incident not found")
var ErrForbidden = errors.New("access forbidden")

// ErrRateLimited is returned by SecureFetch when the request counter
// exceeds its window budget. It fires before any network I/O and must stay
// distinguishable from transport failures.
var ErrRateLimited = errors.New("request rate limit exceeded")
