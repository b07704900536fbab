package api

import (
	"context"
)

type keyType string

const (
	adminKey keyType = "admin"
)

// ctxWithAdmin marks the request as authenticated with the admin password
func ctxWithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// ctxIsAdmin reports whether authenticate admitted the request
func ctxIsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey).(bool)
	return v
}
