package domain

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrHeadNotFound   = errors.New("head not found")
	ErrHeadNotOpen    = errors.New("head not open for donations")
	ErrHeadClosed     = errors.New("head closed but not settled")
	ErrAlreadySettled = errors.New("head already settled")
)
