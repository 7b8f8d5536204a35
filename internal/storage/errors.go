package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fhuszti/music-catalog-ms-go/internal/usecase/music"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return music.ErrObjectNotFound
	case "NoSuchBucket":
		return music.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return music.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", music.ErrInternal, err)
	}
}

func mapFsErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return music.ErrObjectNotFound
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", music.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %v", music.ErrInternal, err)
	}
}
