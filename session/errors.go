package session

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateAccount is returned by Register when the email is taken.
	ErrDuplicateAccount = errors.New("an account with this email already exists")
	// ErrSessionInvalid marks a cookie that cannot be decoded or has expired.
	// ResolveSession never returns it; the cookie is cleared instead.
	ErrSessionInvalid = errors.New("session token is invalid")
	// ErrUnexpected wraps storage and encoding failures.
	ErrUnexpected = errors.New("unexpected error")
)
