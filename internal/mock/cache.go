package mock

import (
	"context"
	"time"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	ListOut []byte

	// etag values
	EtagList string

	// errors
	GetListErr     error
	GetEtagListErr error
	DelListErr     error

	// call flags
	GetListCalled     bool
	GetEtagListCalled bool
	SetListCalled     bool
	SetEtagListCalled bool
	DelListCalled     bool
}

func (c *Cache) GetMusicList(ctx context.Context) ([]byte, error) {
	c.GetListCalled = true
	if c.GetListErr != nil {
		return nil, c.GetListErr
	}
	return c.ListOut, nil
}

func (c *Cache) GetEtagMusicList(ctx context.Context) (string, error) {
	c.GetEtagListCalled = true
	if c.GetEtagListErr != nil {
		return "", c.GetEtagListErr
	}
	return c.EtagList, nil
}

func (c *Cache) SetMusicList(ctx context.Context, data []byte, validUntil time.Time) {
	c.SetListCalled = true
	c.ListOut = data
}

func (c *Cache) SetEtagMusicList(ctx context.Context, etag string, validUntil time.Time) {
	c.SetEtagListCalled = true
	c.EtagList = etag
}

func (c *Cache) DeleteMusicList(ctx context.Context) error {
	c.DelListCalled = true
	return c.DelListErr
}
