package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type TestBucket struct {
	Store   *storage.MinioStorage
	Raw     *minio.Client
	Name    string
	Cleanup func() error
}

// SetupTestBucket creates a dedicated bucket and returns a blob store scoped
// to it. Cleanup empties and removes the bucket.
func SetupTestBucket(endpoint, accessKey, secretKey string) (*TestBucket, error) {
	ctx := context.Background()

	strg, err := storage.NewMinioClient(endpoint, accessKey, secretKey, false)
	if err != nil {
		return nil, err
	}
	raw, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("music-%d", time.Now().UnixNano())
	store := strg.WithBucket(name)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", name, err)
	}

	cleanup := func() error {
		for obj := range raw.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = raw.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := raw.RemoveBucket(ctx, name); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", name, err)
		}
		return nil
	}

	return &TestBucket{Store: store, Raw: raw, Name: name, Cleanup: cleanup}, nil
}
