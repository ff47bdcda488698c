package auth

import (
	"context"

	"github.com/nlowell/fsubs/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// ContextWithUser attaches the resolved acting user to the request context.
func ContextWithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the acting user, or nil when the request was not
// authenticated.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}
