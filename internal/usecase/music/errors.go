package music

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound       = errors.New("catalog: music not found")
	ErrStore          = errors.New("catalog: store failure")
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrStorageWrite   = errors.New("storage: write failed")
	ErrStorageDelete  = errors.New("storage: delete failed")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// ValidationError lists the rejected fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// RangeNotSatisfiableError is returned when a well-formed byte range starts
// past the end of the blob.
type RangeNotSatisfiableError struct {
	Size int64
}

func (e *RangeNotSatisfiableError) Error() string {
	return fmt.Sprintf("range not satisfiable for %d bytes", e.Size)
}
