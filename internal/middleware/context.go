package middleware

import "context"

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	usernameKey contextKey = "username"
	userRoleKey contextKey = "role"
)

// SetUserContext sets user info into context (called by the auth middleware).
func SetUserContext(ctx context.Context, id int, username, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	ctx = context.WithValue(ctx, usernameKey, username)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return ctx
}

// UserIDFromContext retrieves the authenticated user id safely.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
