package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks request errors the caller can fix: missing or
	// malformed parameters. Wrap it with a message naming the problem.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrUserNotFound       = errors.New("user not found")
	ErrEntryNotFound      = errors.New("food entry not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrWeakPassword       = errors.New("password should have at least 8 letters, 1 capital letter, and 1 special character")
)

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
