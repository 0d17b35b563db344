package errors

import "errors"

var (
	ErrInvalidInput  = errors.New("disbursement input is invalid")
	ErrNotFound      = errors.New("disbursement not found")
	ErrAlreadyExists = errors.New("disbursement already recorded")
)
