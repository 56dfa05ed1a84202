package adapter

import "errors"

var (
	ErrUnauthorized   = errors.New("client unauthorized")
	ErrNotFound       = errors.New("not found on server")
	ErrLoginExists    = errors.New("login already exists")
	ErrServerFailure  = errors.New("server failure")
	ErrInvalidRequest = errors.New("invalid request")
)
