package db

import (
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/config"
)

type MariaDbConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConfigFromSettings extracts the pool settings from the service settings.
func ConfigFromSettings(s *config.Settings) MariaDbConfig {
	return MariaDbConfig{
		DSN:             s.MariaDBDSN,
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	}
}
