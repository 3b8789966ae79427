package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, duplicate slug, duplicate
// signup for the same event and email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when an operation requires a signed-in
// caller and none is present. Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when the caller is authenticated but not allowed
// to perform the operation (e.g. a non-staff caller listing signups for an
// event they did not create). Handlers should map this to HTTP 403.
// Distinct from ErrNotFound: the resource exists, the caller may not see it.
var ErrForbidden = errors.New("not permitted")
