package auth

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

func TestLogoutHandler(t *testing.T) {
	j := NewTestJWT(t)
	token := GetAccessToken(t, j, "user-1")
	claims, err := j.ValidatedToken(token)
	require.NoError(t, err)

	lc := NewLogoutController(j)
	handler := func(c *gin.Context) {
		c.Set(ClaimsKey, claims)
		lc.LogoutHandler(c)
	}
	rec, resp, err := utilities.SimulateAPICall(handler, "/auth/logout", http.MethodPost, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully logged out", resp["message"])

	_, err = j.ValidatedToken(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutHandler_NoClaims(t *testing.T) {
	lc := NewLogoutController(NewTestJWT(t))

	rec, resp, err := utilities.SimulateAPICall(lc.LogoutHandler, "/auth/logout", http.MethodPost, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token claims not provided", resp["error"])
}
