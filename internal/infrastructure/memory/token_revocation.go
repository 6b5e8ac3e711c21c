// Package memory implementaciones en memoria del proceso para cuando no hay Redis configurado.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
)

var _ auth.TokenRevocationStore = (*TokenRevocationStore)(nil)

// TokenRevocationStore lista de revocación con TTL. Solo es válida con una única réplica.
type TokenRevocationStore struct {
	mu    sync.RWMutex
	items map[string]time.Time // jti -> expiración
	now   func() time.Time
}

// NewTokenRevocationStore crea la lista vacía.
func NewTokenRevocationStore() *TokenRevocationStore {
	return &TokenRevocationStore{items: map[string]time.Time{}, now: time.Now}
}

// Revoke guarda el jti hasta expiresAt y de paso purga los vencidos.
func (s *TokenRevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, exp := range s.items {
		if !now.Before(exp) {
			delete(s.items, id)
		}
	}
	if expiresAt.IsZero() {
		expiresAt = now.Add(24 * time.Hour)
	}
	if now.Before(expiresAt) {
		s.items[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked indica si el jti está revocado y aún no expiró.
func (s *TokenRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.items[tokenID]
	if !ok {
		return false, nil
	}
	return s.now().Before(exp), nil
}

// Len número de entradas (incluye vencidas aún no purgadas).
func (s *TokenRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
