package service

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries the user facing messages of a rejected form.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Messages []string
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
