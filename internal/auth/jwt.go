package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("super-secret-key")

// SetSecret replaces the signing secret. Call once from main before the
// router starts serving.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateToken mints a short-lived bearer token for a principal. Token
// issuance proper lives in an external service; this exists for tooling
// and tests.
func GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      username,
		"username": username,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

type contextKey string

const actorKey = contextKey("actor")

// WithActor stores the authenticated principal's identity on the context.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey, username)
}

// ActorFromContext returns the identity stored by the auth middleware, or
// an empty string for unauthenticated requests.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok {
		return v
	}
	return ""
}
