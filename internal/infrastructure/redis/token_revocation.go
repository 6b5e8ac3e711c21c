package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/redis/go-redis/v9"
)

var _ auth.TokenRevocationStore = (*TokenRevocationStore)(nil)

const revokedKeyPrefix = "farmacia:revoked:"

// TokenRevocationStore lista de tokens revocados en Redis. Cada jti vive hasta la
// expiración del token, así la lista no crece indefinidamente.
type TokenRevocationStore struct {
	rdb *redis.Client
}

// NewTokenRevocationStore conecta con Redis a partir de una URL redis://.
func NewTokenRevocationStore(ctx context.Context, url string) (*TokenRevocationStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &TokenRevocationStore{rdb: rdb}, nil
}

// Revoke marca el token como revocado hasta expiresAt. Un token ya expirado no se guarda.
func (s *TokenRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := revocationTTL(expiresAt, time.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti figura en la lista.
func (s *TokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis is revoked: %w", err)
	}
	return n > 0, nil
}

// Ping comprueba la conectividad (health check).
func (s *TokenRevocationStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close cierra la conexión.
func (s *TokenRevocationStore) Close() error {
	return s.rdb.Close()
}

func revokedKey(tokenID string) string { return revokedKeyPrefix + tokenID }

// revocationTTL tiempo restante hasta la expiración. Un exp cero (token sin expiración)
// se guarda por 24h.
func revocationTTL(expiresAt, now time.Time) time.Duration {
	if expiresAt.IsZero() {
		return 24 * time.Hour
	}
	return expiresAt.Sub(now)
}
