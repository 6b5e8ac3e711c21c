package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/farmacia-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, issued, err := pkgjwt.Generate(testSecret, "farmacia-test", 60, pkgjwt.Identity{
		UserID: "u-1", Username: "ana", Role: "staff",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.NotEmpty(t, issued.ID, "el token debe llevar jti para poder revocarlo")

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAtTime(), 5*time.Second)
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u-1", Username: "ana", Role: "admin"}
	_, c1, err := pkgjwt.Generate(testSecret, "x", 60, id)
	require.NoError(t, err)
	_, c2, err := pkgjwt.Generate(testSecret, "x", 60, id)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "x", -1, pkgjwt.Identity{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "x", 60, pkgjwt.Identity{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, _, err := pkgjwt.Generate("", "x", 60, pkgjwt.Identity{UserID: "u-1"})
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.Parse("", "abc")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
