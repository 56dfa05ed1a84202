// Package utils provides small helpers shared across the application:
// type-safe context keys, JWT token generation and validation, and UUID
// generation for draft identifiers.
package utils

import "context"

// contextKey is a private type for context keys, preventing collisions
// with string-based keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey stores the authenticated user's identifier in the request
// context. Written by the auth middleware, read via GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing or not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
