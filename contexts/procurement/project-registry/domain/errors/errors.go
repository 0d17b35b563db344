package errors

import "errors"

var (
	ErrInvalidInput  = errors.New("project input is invalid")
	ErrNotFound      = errors.New("project not found")
	ErrAlreadyExists = errors.New("project already exists")
)
