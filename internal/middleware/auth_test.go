package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindclass_backend/internal/config"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", AuthMiddleware(cfg))
	g.GET("/any", func(c *gin.Context) { util.Success(c, util.GetUserFromContext(c).UserID) })
	g.GET("/teacher", RoleMiddleware(model.Teacher), func(c *gin.Context) { util.Success(c, nil) })
	return r
}

func token(t *testing.T, secret string, role model.UserRole) string {
	t.Helper()
	tok, err := util.GenerateJWT(&model.User{ID: "MC-1234-5678-9012", Role: role}, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	r := newRouter(cfg)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/any", "", http.StatusUnauthorized},
		{"bad token", "/any", "Bearer nope", http.StatusUnauthorized},
		{"wrong secret", "/any", "Bearer " + token(t, "other", model.Student), http.StatusUnauthorized},
		{"header token", "/any", "Bearer " + token(t, "secret", model.Student), http.StatusOK},
		{"query token", "/any?token=" + token(t, "secret", model.Student), "", http.StatusOK},
		{"student on teacher route", "/teacher", "Bearer " + token(t, "secret", model.Student), http.StatusForbidden},
		{"teacher on teacher route", "/teacher", "Bearer " + token(t, "secret", model.Teacher), http.StatusOK},
		{"admin passes", "/teacher", "Bearer " + token(t, "secret", model.Admin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
