package queue

import "github.com/pkg/errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("patient not found")
	ErrInvalidState = errors.New("invalid patient state")
)

// ValidationError carries a message the submitter can act on.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
