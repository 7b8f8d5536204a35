package storage

import (
	"fmt"

	"github.com/fhuszti/music-catalog-ms-go/internal/config"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
)

// NewBlobStore builds the backend selected by STORAGE_DRIVER.
func NewBlobStore(cfg *config.Settings) (port.BlobStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		strg, err := NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return strg.WithBucket(cfg.MinioBucket), nil
	case config.StorageDriverLocal, "":
		return NewLocalStorage(cfg.LocalStoragePath), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
