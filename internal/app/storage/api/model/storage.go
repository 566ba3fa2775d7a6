package model

import "github.com/pakolabs/business-console/internal/app/entity"

// CredentialStore persists the bearer token and the user projection across
// process restarts. Implementations report unparseable entries with
// ErrCredentialsCorrupted instead of a bare decode error.
type CredentialStore interface {
	SaveCredentials(credentials entity.Credentials) error
	LoadCredentials() (entity.Credentials, error)
	Clear() error

	// Token returns the persisted bearer token or an empty string.
	Token() string
}
