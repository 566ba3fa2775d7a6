package storage

import "errors"

var (
	ErrCredentialsNotFound  = errors.New("no credentials are persisted in storage")
	ErrCredentialsCorrupted = errors.New("persisted credentials cannot be parsed")
)
