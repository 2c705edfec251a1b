package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"neoverse-be/internal/user"
)

func writeAuthError(w http.ResponseWriter, status int, key, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{key: message})
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Authenticate rejects requests without a valid bearer token and puts the
// token's identity into the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearerToken(r)
		if tokenStr == "" {
			writeAuthError(w, http.StatusUnauthorized, "message", "Missing authorization token")
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "message", "Invalid or expired token")
			return
		}

		ctx := SetUserContext(r.Context(), claims.UserID, claims.Username, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminRequired gates admin-only routes. The role is re-read from the store
// rather than trusted from the token, so a demoted admin loses access as soon
// as the row changes.
func AdminRequired(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "message", "Missing authorization token")
				return
			}

			u, err := users.FindByID(r.Context(), userID)
			if err != nil || u.Role != user.RoleAdmin {
				writeAuthError(w, http.StatusForbidden, "msg", "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
