// Package handlers wires the HTTP surface of the quoting service.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserHeader carries the opaque authenticated-user identifier. Credentials
// are issued and validated by the external identity provider; the fronting
// auth proxy injects this header after verification.
const UserHeader = "X-User-Id"

// GetUserID extracts the authenticated user identifier from the request
// context. Empty means the request is anonymous.
func GetUserID(r *http.Request) string {
	if val, ok := r.Context().Value(UserIDKey).(string); ok {
		return val
	}
	return ""
}

// UserScopeMiddleware copies the user header into the request context so
// handlers and services see one consistent identifier.
func UserScopeMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID := strings.TrimSpace(e.Request.Header.Get(UserHeader))
		if userID != "" {
			ctx := context.WithValue(e.Request.Context(), UserIDKey, userID)
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}

// requireUser resolves the user identifier or writes a 401. Store-touching
// endpoints are always per-user; quote generation is the only anonymous
// entry point.
func requireUser(e *core.RequestEvent) (string, bool) {
	userID := GetUserID(e.Request)
	if userID == "" {
		e.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user identity"})
		return "", false
	}
	return userID, true
}
