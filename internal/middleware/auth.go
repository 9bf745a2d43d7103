package middleware

import (
	"net/http"
	"strings"

	"pasarloka-be/internal/user"
)

// AuthMiddleware resolves the actor from a bearer token. Requests without a
// valid token pass through unauthenticated; handlers decide whether the
// operation requires an actor.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractAccessToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithActor(r.Context(), claims.UserID, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
