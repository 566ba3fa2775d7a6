package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pakolabs/business-console/internal/app/entity"
	err_storage "github.com/pakolabs/business-console/internal/app/storage/api/errors"
)

const (
	tokenFileName = "token"
	userFileName  = "user.json"

	fileMode = 0o600
	dirMode  = 0o700
)

// FileStore keeps the two persisted entries as files in a cache directory:
// the raw bearer token and a JSON user projection.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	err := os.MkdirAll(dir, dirMode)
	if err != nil {
		return nil, fmt.Errorf("error while creating token cache directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveCredentials(credentials entity.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userData, err := json.Marshal(credentials.User)
	if err != nil {
		return fmt.Errorf("error while marshalling user projection: %w", err)
	}

	err = os.WriteFile(s.tokenPath(), []byte(credentials.Token), fileMode)
	if err != nil {
		return fmt.Errorf("error while writing token entry: %w", err)
	}

	err = os.WriteFile(s.userPath(), userData, fileMode)
	if err != nil {
		return fmt.Errorf("error while writing user entry: %w", err)
	}

	return nil
}

func (s *FileStore) LoadCredentials() (entity.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenData, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.Credentials{}, err_storage.ErrCredentialsNotFound
		}

		return entity.Credentials{}, fmt.Errorf("error while reading token entry: %w", err)
	}

	token := strings.TrimSpace(string(tokenData))
	if len(token) == 0 {
		return entity.Credentials{}, err_storage.ErrCredentialsNotFound
	}

	userData, err := os.ReadFile(s.userPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.Credentials{}, err_storage.ErrCredentialsNotFound
		}

		return entity.Credentials{}, fmt.Errorf("error while reading user entry: %w", err)
	}

	var user entity.User
	err = json.Unmarshal(userData, &user)
	if err != nil {
		return entity.Credentials{}, err_storage.ErrCredentialsCorrupted
	}

	return entity.Credentials{
		Token: token,
		User:  user,
	}, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.tokenPath(), s.userPath()} {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error while removing credential entry: %w", err)
		}
	}

	return nil
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenData, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(tokenData))
}

func (s *FileStore) tokenPath() string {
	return filepath.Join(s.dir, tokenFileName)
}

func (s *FileStore) userPath() string {
	return filepath.Join(s.dir, userFileName)
}
