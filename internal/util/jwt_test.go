package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindclass_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{ID: "MC-1111-2222-3333", Email: "a@b.c", Role: model.Teacher}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, user.ID, claims.Subject)
	assert.NotNil(t, claims.IssuedAt)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{ID: "MC-1111-2222-3333", Role: model.Student}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsForeignClaims(t *testing.T) {
	sign := func(rc jwt.RegisteredClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "MC-1111-2222-3333", RegisteredClaims: rc}).
			SignedString([]byte("secret"))
		require.NoError(t, err)
		return tok
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"other issuer", sign(jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: exp})},
		{"no issuer", sign(jwt.RegisteredClaims{ExpiresAt: exp})},
		{"no expiry", sign(jwt.RegisteredClaims{Issuer: TokenIssuer})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJWT(tt.token, "secret")
			assert.Error(t, err)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{"bearer header", "/", "Bearer abc", "abc"},
		{"header wins over query", "/?token=q", "Bearer abc", "abc"},
		{"query for websockets", "/?token=q", "", "q"},
		{"other scheme falls back", "/?token=q", "Basic xyz", "q"},
		{"nothing", "/", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, TokenFromRequest(ctx))
		})
	}
}

func TestUserContext(t *testing.T) {
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetUserFromContext(ctx))

	ctx.Set(claimsKey, "not claims")
	assert.Nil(t, GetUserFromContext(ctx))

	SetUser(ctx, &Claims{UserID: "MC-1111-2222-3333"})
	assert.Equal(t, "MC-1111-2222-3333", GetUserFromContext(ctx).UserID)
}
