package domain

import "errors"

// ErrNotFound is returned when a slug or id lookup misses.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, itinerary day out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateSlug is returned when a create or update would give two trips
// the same slug. Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateSlug = errors.New("duplicate slug")

// ErrUnavailable is returned when the remote store is unreachable, times out,
// returns malformed data, or is not configured.
// The catalog resolver swallows it and serves the static catalog instead;
// mutation paths surface it as HTTP 503.
var ErrUnavailable = errors.New("remote store unavailable")

// ErrUnauthorized is returned when admin credentials or a session token are
// missing, wrong, or expired. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
