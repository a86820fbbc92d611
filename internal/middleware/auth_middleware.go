package middleware

import (
	"context"
	"net/http"
	"strings"

	"noti-server/internal/domain"
	"noti-server/internal/token"
	"noti-server/pkg/response"
)

type contextKey string

const IdentityKey contextKey = "identity"

// Identity extracts and verifies a bearer token when one is present and
// attaches the resulting claims to the request context. Requests without a
// valid token pass through unauthenticated; enforcement is RequireAuth's job.
func Identity(verifier token.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no verified identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r) == nil {
			response.Unauthorized(w, "Missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity returns the verified identity attached to the request, or nil
// for anonymous requests.
func GetIdentity(r *http.Request) *domain.Identity {
	identity, ok := r.Context().Value(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
