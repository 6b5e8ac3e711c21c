package auth

import (
	"context"
	"time"
)

// TokenRevocationStore lista de tokens invalidados por logout, indexada por jti.
// Las entradas caducan solas al expirar el token.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
