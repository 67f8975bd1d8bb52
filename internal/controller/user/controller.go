// Package user provides HTTP handlers for the signed in reviewer.
package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// UserController handles user related endpoints
type UserController struct{}

func NewUserController() *UserController {
	return &UserController{}
}

// Me returns the user the bearer token belongs to, as loaded by
// RequireAuth.
func (uc *UserController) Me(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
