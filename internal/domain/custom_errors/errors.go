package custom_errors

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")

	ErrAlreadyLiked = errors.New("you have already liked this post")
	ErrNotLiked     = errors.New("you have not liked this post")
	ErrForbidden    = errors.New("user is not the owner of the post")

	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")

	ErrInvalidInput = errors.New("invalid input")

	ErrDatabaseQuery = errors.New("database query failed")
	ErrCacheMiss     = errors.New("cache miss")
	ErrPublishFailed = errors.New("event publish failed")
)

// InvalidInputError carries a client-facing message and matches ErrInvalidInput via errors.Is.
type InvalidInputError struct {
	Field   string
	Message string
}

func NewInvalidInput(field, message string) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: message}
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
