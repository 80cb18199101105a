package jwtmanager

import (
	"fmt"
	"strings"
	"time"

	"claimswitch-service/internal/app/contracts"

	"github.com/golang-jwt/jwt/v4"
)

// WebhookTokenManager verifies HS256 bearer tokens on the provider webhook
// path. Each provider signs with its own webhook secret, so a leaked secret
// only compromises that provider's callbacks.
type WebhookTokenManager struct {
	leeway time.Duration
}

func NewWebhookTokenManager(leeway time.Duration) contracts.WebhookTokenManager {
	return &WebhookTokenManager{leeway: leeway}
}

func (m *WebhookTokenManager) VerifyToken(tokenString, secret string) error {
	if strings.TrimSpace(tokenString) == "" {
		return fmt.Errorf("token is required")
	}
	if secret == "" {
		return fmt.Errorf("provider has no webhook secret configured")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}

	// The parser only checks the signature; exp and nbf are validated here
	// against a window widened by the configured leeway.
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("token is not valid")
	}

	now := time.Now()
	if !claims.VerifyExpiresAt(now.Add(-m.leeway).Unix(), false) {
		return fmt.Errorf("token is expired")
	}
	if !claims.VerifyNotBefore(now.Add(m.leeway).Unix(), false) {
		return fmt.Errorf("token used before its not-before time")
	}
	return nil
}

// SignToken issues a short-lived token for a provider. Used when handing
// credentials to a provider's integration team and by tests.
func SignToken(providerCode, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": providerCode,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
