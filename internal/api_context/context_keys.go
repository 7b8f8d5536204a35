package api_context

import (
	"context"

	"github.com/fhuszti/music-catalog-ms-go/internal/uuid"
)

type ctxKey string

const (
	IDKey         ctxKey = "id"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	return id, ok
}

// AuthUserIDFromContext returns the token subject set by the auth middleware.
func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(AuthUserIDKey).(string)
	return sub, ok && sub != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
