package middleware

import (
	"context"

	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
)

type contextKey string

const (
	ctxUserID      contextKey = "user_id"
	ctxUsername    contextKey = "username"
	ctxRole        contextKey = "actor_role"
	ctxPermissions contextKey = "permissions"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func PermissionsFromContext(ctx context.Context) pkgAuth.Permissions {
	if ctx == nil {
		return pkgAuth.Permissions{}
	}
	if v, ok := ctx.Value(ctxPermissions).(pkgAuth.Permissions); ok {
		return v
	}
	return pkgAuth.Permissions{}
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithPermissions injects the actor's grants into the context for downstream handlers.
func WithPermissions(ctx context.Context, perms pkgAuth.Permissions) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPermissions, perms)
}
