// Package errorz holds the typed errors shared by services and repositories.
// The HTTP layer maps them to status codes; nothing below it knows about HTTP.
package errorz

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSessionEnded        = errors.New("class session has ended")
	ErrDuplicateQuestion   = errors.New("question already asked in this class")
	ErrInvalidStatus       = errors.New("invalid question status")
	ErrDuplicateAccessCode = errors.New("access code already registered")
	ErrCodeSpaceExhausted  = errors.New("could not generate a unique access code")
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
