package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRevocationStore_RevokeAndCheck(t *testing.T) {
	s := NewTokenRevocationStore()
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRevocationStore_Expira(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewTokenRevocationStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "jti-1", now.Add(time.Minute)))
	now = now.Add(2 * time.Minute)

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// El siguiente Revoke purga la entrada vencida.
	require.NoError(t, s.Revoke(ctx, "jti-2", now.Add(time.Minute)))
	assert.Equal(t, 1, s.Len())
}

func TestTokenRevocationStore_TokenYaExpiradoNoSeGuarda(t *testing.T) {
	s := NewTokenRevocationStore()
	require.NoError(t, s.Revoke(context.Background(), "jti-1", time.Now().Add(-time.Minute)))
	assert.Equal(t, 0, s.Len())
}
