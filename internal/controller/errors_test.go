package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindclass_backend/internal/session"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", util.ErrTestNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Wrap(util.ErrPathNotFound, "find path"), http.StatusNotFound},
		{"permission", util.ErrPermissionDenied, http.StatusForbidden},
		{"conflict", session.ErrAlreadySubmitted, http.StatusConflict},
		{"bad code", session.ErrInvalidCode, http.StatusBadRequest},
		{"uid format", util.ErrUIDFormat, http.StatusBadRequest},
		{"generation", util.ErrGenerationFailed, http.StatusBadGateway},
		{"cancelled", context.Canceled, http.StatusRequestTimeout},
		{"notification", util.ErrNotificationNotFound, http.StatusNotFound},
		{"time limit", session.ErrTimeLimit, http.StatusBadRequest},
		{"wrapped cancel", errors.Wrap(context.Canceled, "poll video"), http.StatusRequestTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(ctx, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCurrentUserRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	_, ok := currentUser(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	util.SetUser(ctx, &util.Claims{UserID: "MND-1"})
	claims, ok := currentUser(ctx)
	assert.True(t, ok)
	assert.Equal(t, "MND-1", claims.UserID)
}

func TestRespondErrorMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"domain message kept", errors.Wrap(util.ErrAlreadyJoined, "join SCI-10A"), "join SCI-10A: already joined"},
		{"permission is generic", util.ErrPermissionDenied, "Forbidden"},
		{"cancel", context.Canceled, "request cancelled"},
		{"internal hidden", errors.New("dial tcp 10.0.0.3:3306"), "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(ctx, tt.err)
			var body util.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Message)
			assert.Equal(t, w.Code, body.Code)
		})
	}
}
