package jwtmanager

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "webhook-secret-key"

func signWithTimes(t *testing.T, secret string, nbf, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "DSC",
		"iat": nbf.Unix(),
		"nbf": nbf.Unix(),
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)

	token, err := SignToken("DSC", testWebhookSecret, time.Hour)
	require.NoError(t, err)

	assert.NoError(t, manager.VerifyToken(token, testWebhookSecret))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)

	token, err := SignToken("DSC", "some-other-secret", time.Hour)
	require.NoError(t, err)

	assert.Error(t, manager.VerifyToken(token, testWebhookSecret))
}

func TestVerifyToken_ExpiredWithinLeeway(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)
	now := time.Now()

	token := signWithTimes(t, testWebhookSecret, now.Add(-time.Hour), now.Add(-10*time.Second))

	assert.NoError(t, manager.VerifyToken(token, testWebhookSecret),
		"a token expired less than the leeway ago still verifies")
}

func TestVerifyToken_ExpiredBeyondLeeway(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)
	now := time.Now()

	token := signWithTimes(t, testWebhookSecret, now.Add(-2*time.Hour), now.Add(-time.Hour))

	assert.Error(t, manager.VerifyToken(token, testWebhookSecret))
}

func TestVerifyToken_NotYetValidWithinLeeway(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)
	now := time.Now()

	token := signWithTimes(t, testWebhookSecret, now.Add(10*time.Second), now.Add(time.Hour))

	assert.NoError(t, manager.VerifyToken(token, testWebhookSecret),
		"a token whose nbf is inside the leeway window verifies")
}

func TestVerifyToken_NotYetValidBeyondLeeway(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)
	now := time.Now()

	token := signWithTimes(t, testWebhookSecret, now.Add(5*time.Minute), now.Add(time.Hour))

	assert.Error(t, manager.VerifyToken(token, testWebhookSecret))
}

func TestVerifyToken_MissingTokenOrSecret(t *testing.T) {
	manager := NewWebhookTokenManager(30 * time.Second)

	token, err := SignToken("DSC", testWebhookSecret, time.Hour)
	require.NoError(t, err)

	assert.Error(t, manager.VerifyToken("", testWebhookSecret))
	assert.Error(t, manager.VerifyToken(token, ""))
}
