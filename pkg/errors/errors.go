package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConnection         = errors.New("record store connection failed")
	ErrTableNotFound      = errors.New("table not found")
	ErrCredentialsMissing = errors.New("service credentials missing")
	ErrInvalidCredentials = errors.New("invalid service credentials")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrObjectNotFound     = errors.New("object not found")
)

// ValidationError reports a stored value that could not be interpreted.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

type RetryableError struct {
	Err     error
	Message string
}

func (e RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %s - %s", e.Message, e.Err.Error())
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error, message string) error {
	return RetryableError{
		Err:     err,
		Message: message,
	}
}

func IsRetryable(err error) bool {
	var re RetryableError
	return errors.As(err, &re)
}
