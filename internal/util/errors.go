package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotEnrolled        = errors.New("student not enrolled in course")
	ErrEmptyDocument      = errors.New("document contains no extractable text")
)
