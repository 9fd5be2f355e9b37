// Package session carries the authenticated user through request contexts.
package session

import "context"

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"
)

func WithUser(ctx context.Context, id int, login string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userLoginKey, login)
}

// UserID returns the authenticated user's id, false when anonymous.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id != 0
}

func Login(ctx context.Context) string {
	login, _ := ctx.Value(userLoginKey).(string)
	return login
}
