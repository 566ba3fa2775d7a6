package storage

import (
	"fmt"

	"github.com/pakolabs/business-console/internal/app/config"
	"github.com/pakolabs/business-console/internal/app/storage/api/model"
	storage "github.com/pakolabs/business-console/internal/app/storage/file"
)

func InitStorage(config config.Config) (model.CredentialStore, error) {
	if len(config.TokenCacheDir) == 0 {
		return nil, fmt.Errorf("empty token cache directory config")
	}

	return storage.NewFileStore(config.TokenCacheDir)
}
