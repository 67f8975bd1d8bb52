package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// ClaimsKey is the gin context key of the validated *jwt.RegisteredClaims.
const ClaimsKey = "claims"

// LogoutController revokes the bearer token of the request
type LogoutController struct {
	Tokens *JWT
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(tokens *JWT) *LogoutController {
	return &LogoutController{Tokens: tokens}
}

// LogoutHandler revokes the token RequireAuth validated, so it is refused
// from now until it would have expired.
func (lc *LogoutController) LogoutHandler(c *gin.Context) {
	raw, _ := c.Get(ClaimsKey)
	claims, ok := raw.(*jwt.RegisteredClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Token claims not provided"})
		return
	}

	if err := lc.Tokens.Revoke(claims); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Failed to logout: " + err.Error()})
		return
	}

	LogAttempt(StatusSuccess, claims.Subject, "logged out")
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}
