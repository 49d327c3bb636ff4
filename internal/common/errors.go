package common

import "errors"

// Callers match these with errors.Is.
var (
	// Session errors. These describe router decisions and are never shown
	// to the user as error text.
	ErrSessionAbsent = errors.New("session absent")
	ErrRoleMismatch  = errors.New("role mismatch")

	// Persisted record could not be decoded.
	ErrMalformedSession = errors.New("malformed session")

	// Stored access token carries an exp claim in the past.
	ErrTokenExpired = errors.New("token expired")

	// Validation errors.
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrUnknownRole      = errors.New("unknown role")
)
