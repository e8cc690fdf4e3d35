package service

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers map these to statuses;
// anything else is treated as an upstream failure.
var (
	// ErrEmailTaken reports a signup against an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers malformed tokens, bad signatures, and tokens
	// whose subject no longer exists.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired reports a well-formed, correctly signed token past exp.
	ErrTokenExpired = errors.New("token expired")

	// ErrProjectNotFound is returned for absent projects and for projects
	// owned by a different user, identically.
	ErrProjectNotFound = errors.New("project not found")

	// ErrUnsupportedMedia rejects uploads that are not audio.
	ErrUnsupportedMedia = errors.New("only audio files are supported")
)
