package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on a unique constraint violation.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidCredentials is returned when signin fails for any reason.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyImages is returned when a record carries more images than allowed.
	ErrTooManyImages = errors.New("too many images")
)

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field of a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return "validation failed: " + v[0].Field + " " + v[0].Message
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// checkPassword validates an optional password; empty means unchanged.
func (v *ValidationErrors) checkPassword(password string) {
	switch {
	case password == "":
	case len(password) < MinPasswordLength:
		v.add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordLength:
		v.add("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}
}
