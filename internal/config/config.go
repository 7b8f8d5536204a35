package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	StorageDriver    string
	LocalStoragePath string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string

	MaxUploadSize     int64
	ListCacheTTL      time.Duration
	SweepGracePeriod  time.Duration
	SweepWorkerConcur int

	LogLevel  string
	LogFormat string
	LogSource bool
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	v.SetDefault("STORAGE_DRIVER", StorageDriverLocal)
	v.SetDefault("LOCAL_STORAGE_PATH", "music")
	v.SetDefault("MINIO_BUCKET", "music")
	v.SetDefault("MAX_UPLOAD_SIZE", 100<<20)
	v.SetDefault("LIST_CACHE_TTL", 300)
	v.SetDefault("SWEEP_GRACE_PERIOD", 3600)
	v.SetDefault("SWEEP_WORKER_CONCURRENCY", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
	} {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	driver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	switch driver {
	case StorageDriverLocal:
	case StorageDriverMinio:
		for _, key := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if v.GetString(key) == "" {
				return nil, fmt.Errorf("%s is required when STORAGE_DRIVER is minio", key)
			}
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverLocal, StorageDriverMinio, driver)
	}

	maxUpload := v.GetInt64("MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return &Settings{
		MariaDBDSN:      v.GetString("MARIADB_DSN"),
		MaxOpenConns:    v.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    v.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(v.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      v.GetInt("SERVER_PORT"),

		StorageDriver:    driver,
		LocalStoragePath: v.GetString("LOCAL_STORAGE_PATH"),

		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		MinioBucket:    v.GetString("MINIO_BUCKET"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		JWTPublicKey: v.GetString("JWT_PUBLIC_KEY"),

		MaxUploadSize:     maxUpload,
		ListCacheTTL:      time.Duration(v.GetInt("LIST_CACHE_TTL")) * time.Second,
		SweepGracePeriod:  time.Duration(v.GetInt("SWEEP_GRACE_PERIOD")) * time.Second,
		SweepWorkerConcur: v.GetInt("SWEEP_WORKER_CONCURRENCY"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		LogSource: v.GetBool("LOG_SOURCE"),
	}, nil
}
