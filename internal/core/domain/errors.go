package domain

import "errors"

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrMobileNotFound     = errors.New("mobile not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")
)

// IsNotFound reports whether err is one of the entity lookup failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrMobileNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
