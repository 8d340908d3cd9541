package http

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inventory-catalog/api/internal/auth"
	"github.com/inventory-catalog/api/internal/http/ban"
	"github.com/inventory-catalog/api/internal/http/ratelimit"
)

// AuthMiddleware verifies the bearer token and stores the principal's
// username on the context as the audit actor. It does not authorize; any
// valid token passes.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authorization, "Bearer ")
		token, err := auth.ParseToken(tokenStr)
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		username, _ := claims["username"].(string)
		if username == "" {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), username)))
	})
}

// RateLimitMiddleware throttles a client's mutating requests. Repeat
// violations accumulate strikes in Redis until the client is temp-banned.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ban.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		id := clientID(r)

		if ban.IsBanned(id) {
			http.Error(w, "temporarily banned", http.StatusTooManyRequests)
			return
		}

		if !ratelimit.GetVisitor(id).Allow() {
			if ban.Strike(id, r.URL.Path) {
				log.Printf("rate limit: %s banned after repeated violations on %s", id, r.URL.Path)
			}
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	if actor := auth.ActorFromContext(r.Context()); actor != "" {
		return actor
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
