package user

import "errors"

var (
	ErrNotFound      = errors.New("staff account not found")
	ErrAlreadyExists = errors.New("login already taken")
	ErrInvalidAuth   = errors.New("invalid credentials")
	ErrInvalidInput  = errors.New("invalid input")
)
