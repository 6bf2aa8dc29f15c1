package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/salmichou-pos/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testSessionID = "00000000-0000-0000-0000-00000000000a"
	testUserID    = "1"
	testIssuer    = "salmichou-test"
)

func TestGenerateAndParse_ConSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "manager", testIssuer, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sid, userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSessionID, sid)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "manager", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "admin", testIssuer, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testUserID, "admin", testIssuer, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", testSessionID, testUserID, "admin", testIssuer, time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestParse_SinSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", testUserID, "admin", testIssuer, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token sin sid no localiza ninguna sesión")
}
