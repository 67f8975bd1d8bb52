// Package middleware contain utilities middleware code
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// UserGetter loads the user a token was issued to.
type UserGetter interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// RequireAuth validates the Bearer token in the Authorization header,
// loads the user it names and stores it in the context under
// utilities.UserKey.
func RequireAuth(tokens *auth.JWT, users UserGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		claims, err := tokens.ValidatedToken(tokenString)
		if err != nil {
			auth.LogAttempt(auth.StatusFail, ctx.ClientIP(), err.Error())

			msg := "Failed to validate token: " + err.Error()
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Access token expired"
			case errors.Is(err, auth.ErrInvalidIssuer):
				msg = "Invalid token issuer"
			case errors.Is(err, auth.ErrTokenRevoked):
				msg = "Token has been revoked"
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: msg,
			})
			return
		}

		foundUser, err := users.GetUser(ctx.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				auth.LogAttempt(auth.StatusFail, claims.Subject, "user does not exist")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "User not exist",
				})
				return
			}
			utilities.AbortWithStoreError(ctx, err, "Failed to retrieve user data")
			return
		}

		auth.LogAttempt(auth.StatusSuccess, foundUser.ID, ctx.FullPath())
		ctx.Set(auth.ClaimsKey, claims)
		ctx.Set(utilities.UserKey, *foundUser)
		ctx.Next()
	}
}
