// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// UserKey is the gin context key of the authenticated model.User.
const UserKey = "user"

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that carry no record
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; it returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get(UserKey)
	if u == nil {
		return model.User{}, errors.New("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// StoreErrorStatus maps a store error to its HTTP status code.
func StoreErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, connection.ErrNotConfigured), errors.Is(err, connection.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// AbortWithBindError responds to a body that failed to bind: 413 when it
// was cut off by the size limit, 400 otherwise.
func AbortWithBindError(c *gin.Context, err error) {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Entity too large",
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
	})
}

// AbortWithStoreError responds with the status of err. Server side
// failures are logged; what names the failed operation.
func AbortWithStoreError(c *gin.Context, err error, what string) {
	status := StoreErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDb,
			"path":                c.FullPath(),
		}).Errorf("%s: %v", what, err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: what + ": " + err.Error(),
	})
}
