package application

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("not authorized to access this workout")
	ErrNotFound        = errors.New("workout not found")
)

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level details and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + e.Fields[0].Field + " " + e.Fields[0].Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}
