package errors

import "errors"

var (
	ErrInvalidInput  = errors.New("company input is invalid")
	ErrNotFound      = errors.New("company not found")
	ErrAlreadyExists = errors.New("company already exists")
)
