package utilities

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

func TestStoreErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("job: %w", store.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("author: %w", store.ErrInvalidReference), http.StatusBadRequest},
		{store.ErrDuplicate, http.StatusConflict},
		{connection.ErrNotConfigured, http.StatusServiceUnavailable},
		{errors.New("socket closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StoreErrorStatus(tt.err), tt.err.Error())
	}
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwdw==", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", tt.header)

		got, err := ExtractBearerToken(c)
		if tt.ok {
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, tt.header)
		}
	}
}

func TestExtractUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := ExtractUser(c)
	assert.Error(t, err)

	c.Set(UserKey, "not a user")
	_, err = ExtractUser(c)
	assert.Error(t, err)

	c.Set(UserKey, model.User{ID: "u1", Username: "alice"})
	user, err := ExtractUser(c)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAbortWithBindError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"malformed", errors.New("unexpected EOF"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			AbortWithBindError(c, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.True(t, c.IsAborted())
		})
	}
}
