package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/gabriel-vasile/mimetype"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// sniffLen is how many leading bytes are inspected to detect the content type.
const sniffLen = 3072

type MinioStorage struct {
	client     minioClient
	bucketName string
	useSSL     bool
	now        func() time.Time
	suffix     func() int
}

type Strg struct {
	Client minioClient
	useSSL bool
}

// compile-time check: *MinioStorage must satisfy port.BlobStore
var _ port.BlobStore = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client, useSSL: useSSL}, nil
}

// WithBucket scopes the client to one bucket; Init creates it if needed.
func (c *Strg) WithBucket(bucket string) *MinioStorage {
	return &MinioStorage{client: c.Client, bucketName: bucket, useSSL: c.useSSL, now: time.Now, suffix: randomSuffix}
}

func (s *MinioStorage) Init(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", s.bucketName)
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

// Put stores r under a fresh name, never replacing an existing object. The
// content type is sniffed from the first bytes.
func (s *MinioStorage) Put(ctx context.Context, kind model.FileKind, r io.Reader, size int64, originalName string) (string, error) {
	key, err := s.freeKey(ctx, originalName)
	if err != nil {
		return "", err
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("%w: %v", music.ErrStorageWrite, err)
	}
	contentType := mimetype.Detect(head).String()

	logger.Debugf(ctx, "saving %s file %q (%s) into bucket %q...", kind, key, contentType, s.bucketName)
	_, err = s.client.PutObject(ctx, s.bucketName, key, br, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: %w", music.ErrStorageWrite, mapMinioErr(err))
	}
	return key, nil
}

func (s *MinioStorage) freeKey(ctx context.Context, originalName string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		key := newObjectKey(s.now(), s.suffix(), originalName)
		_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
		if err == nil {
			continue
		}
		if mapped := mapMinioErr(err); !errors.Is(mapped, music.ErrObjectNotFound) {
			return "", fmt.Errorf("%w: %w", music.ErrStorageWrite, mapped)
		}
		return key, nil
	}
	return "", fmt.Errorf("%w: no free name after %d attempts", music.ErrStorageWrite, maxNameAttempts)
}

// Delete removes ref, reporting ErrObjectNotFound when it does not exist.
func (s *MinioStorage) Delete(ctx context.Context, ref string) error {
	if !validKey(ref) {
		return music.ErrObjectNotFound
	}
	logger.Debugf(ctx, "removing file %q from bucket %q...", ref, s.bucketName)

	if _, err := s.client.StatObject(ctx, s.bucketName, ref, minio.StatObjectOptions{}); err != nil {
		if mapped := mapMinioErr(err); errors.Is(mapped, music.ErrObjectNotFound) {
			return mapped
		}
		return fmt.Errorf("%w: %w", music.ErrStorageDelete, mapMinioErr(err))
	}
	if err := s.client.RemoveObject(ctx, s.bucketName, ref, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %w", music.ErrStorageDelete, mapMinioErr(err))
	}
	return nil
}

// Open returns a reader bound to ctx and the object size.
func (s *MinioStorage) Open(ctx context.Context, ref string) (io.ReadSeekCloser, int64, error) {
	if !validKey(ref) {
		return nil, 0, music.ErrObjectNotFound
	}

	info, err := s.client.StatObject(ctx, s.bucketName, ref, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, mapMinioErr(err)
	}
	obj, err := s.client.GetObject(ctx, s.bucketName, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, mapMinioErr(err)
	}
	return obj, info.Size, nil
}

// List returns every object in the bucket. Stopping early cancels the
// listing goroutine.
func (s *MinioStorage) List(ctx context.Context) ([]port.ObjectInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []port.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, mapMinioErr(obj.Err)
		}
		out = append(out, port.ObjectInfo{Key: obj.Key, SizeBytes: obj.Size, ModTime: obj.LastModified})
	}
	return out, nil
}
