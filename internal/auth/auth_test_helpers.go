package auth

import (
	"testing"
	"time"

	"github.com/GameXcalibur/LynxATS/internal/config"
)

// TestSecret signs tokens made by NewTestJWT.
const TestSecret = "test-secret"

// NewTestJWT returns a JWT configured for tests.
func NewTestJWT(t *testing.T) *JWT {
	t.Helper()
	j, err := New(config.AuthConfig{SecretKey: TestSecret, Issuer: "LynxATS", TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	return j
}

// GetAccessToken mints a token for userID.
func GetAccessToken(t *testing.T, j *JWT, userID string) string {
	t.Helper()
	token, err := j.GenerateToken(userID)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	return token
}
