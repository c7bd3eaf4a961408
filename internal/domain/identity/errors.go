package identity

import "errors"

var (
	ErrEmailTaken         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is a client input problem. Its message is returned to the
// caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func required(field string) error {
	return &ValidationError{Message: field + " is required"}
}
