package services

import "errors"

// Service errors carry a stable reason the controllers translate into HTTP
// statuses. Services never touch the transport layer. Every check runs
// before any write, so a refused operation leaves no partial state behind.
var (
	// ErrNotFound — the referenced course/lesson/user does not resolve, or
	// is archived/hidden for this caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden — the caller lacks the role or ownership relation the
	// operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation — malformed or missing input, refused before any mutation.
	ErrValidation = errors.New("validation failed")

	// Registration conflicts.
	ErrUsernameTaken = errors.New("username is already registered")
	ErrEmailTaken    = errors.New("email is already registered")

	// Authentication.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Enrollment & certificates.
	ErrPaymentRequired      = errors.New("payment required")
	ErrNotEnrolled          = errors.New("not enrolled")
	ErrCertificatesDisabled = errors.New("certificates disabled for this course")
	ErrCourseIncomplete     = errors.New("incomplete")

	// Token / code flows.
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInvalidCode  = errors.New("invalid code")
	ErrSameEmail    = errors.New("new email matches the current one")
)
