package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevocationTTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Minute, revocationTTL(now.Add(30*time.Minute), now))
	assert.LessOrEqual(t, revocationTTL(now.Add(-time.Minute), now), time.Duration(0))
	assert.Equal(t, 24*time.Hour, revocationTTL(time.Time{}, now))
}

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "farmacia:revoked:abc", revokedKey("abc"))
}
