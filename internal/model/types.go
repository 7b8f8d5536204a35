package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Likes is the set of identifiers that liked a music. It is persisted as a
// JSON array and always rendered as an array, never as null.
type Likes []string

// NewLikes builds a set from ids, dropping duplicates while keeping the order
// of first occurrence.
func NewLikes(ids []string) Likes {
	seen := make(map[string]struct{}, len(ids))
	out := make(Likes, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (l Likes) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l Likes) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal Likes: %w", err)
	}
	return b, nil
}

func (l *Likes) Scan(src interface{}) error {
	if src == nil {
		*l = Likes{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Likes.Scan: expected []byte, got %T", src)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("unmarshal Likes: %w", err)
	}
	*l = NewLikes(ids)
	return nil
}
