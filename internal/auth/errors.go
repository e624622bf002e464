package auth

import "errors"

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
	ErrUnauthorized  = errors.New("auth: unauthorized")
	ErrInvalidInput  = errors.New("auth: invalid input")
)
