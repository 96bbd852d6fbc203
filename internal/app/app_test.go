package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindclass_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Driver = "memory"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.AI.Provider = "static"
	cfg.Session.TickMillis = 3600 * 1000
	cfg.Seed.Demo = true
	cfg.RateLimit.MaxRequests = 1000
	cfg.RateLimit.WindowMinutes = 1
	return cfg
}

func newTestApp(t *testing.T) *App {
	a, err := NewApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func call(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func login(t *testing.T, a *App, email, role string) string {
	code, env := call(t, a, http.MethodPost, "/api/login", "", gin.H{"email": email, "role": role})
	require.Equal(t, http.StatusOK, code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestStudentTakesDemoTest(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a, "student@example.com", "STUDENT")

	code, env := call(t, a, http.MethodPost, "/api/student/attempt/join", token, gin.H{"code": "123456"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var snap struct {
		View             string `json:"view"`
		RemainingSeconds int    `json:"remainingSeconds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "TAKE", snap.View)
	assert.Equal(t, 600, snap.RemainingSeconds)

	code, _ = call(t, a, http.MethodPut, "/api/student/attempt/answer", token, gin.H{"questionId": 1, "value": "Chlorophyll"})
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, a, http.MethodPost, "/api/student/attempt/submit", token, nil)
	require.Equal(t, http.StatusOK, code)
	var result struct {
		Score    int `json:"score"`
		MaxScore int `json:"maxScore"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.MaxScore)

	code, _ = call(t, a, http.MethodPost, "/api/student/attempt/submit", token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = call(t, a, http.MethodGet, "/api/student/results", token, nil)
	require.Equal(t, http.StatusOK, code)
	var results []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
}

func TestRouteGuards(t *testing.T) {
	a := newTestApp(t)
	student := login(t, a, "s@example.com", "STUDENT")
	teacher := login(t, a, "t@example.com", "TEACHER")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/health", "", http.StatusOK},
		{"profile needs a token", http.MethodGet, "/api/profile", "", http.StatusUnauthorized},
		{"student cannot list teacher tests", http.MethodGet, "/api/teacher/tests", student, http.StatusForbidden},
		{"teacher cannot join attempts", http.MethodPost, "/api/student/attempt/join", teacher, http.StatusForbidden},
		{"teacher lists own tests", http.MethodGet, "/api/teacher/tests", teacher, http.StatusOK},
		{"anyone sees live tests", http.MethodGet, "/api/tests/live", student, http.StatusOK},
		{"dashboard", http.MethodGet, "/api/dashboard", teacher, http.StatusOK},
		{"notifications need a token", http.MethodGet, "/api/notifications", "", http.StatusUnauthorized},
		{"student reads notifications", http.MethodGet, "/api/notifications", student, http.StatusOK},
		{"teacher marks notifications read", http.MethodPut, "/api/notifications/read", teacher, http.StatusOK},
		{"grading needs questions", http.MethodPost, "/api/content/practice-test/grade", student, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := call(t, a, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestWrongAccessCode(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a, "student@example.com", "STUDENT")

	code, env := call(t, a, http.MethodPost, "/api/student/attempt/join", token, gin.H{"code": "000000"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, env.Message)
}

func TestApplyConfigUpdatesLimiter(t *testing.T) {
	a := newTestApp(t)
	next := testConfig(t)
	next.RateLimit.MaxRequests = 1
	next.AI.Model = "other-model"

	for _, cb := range a.configCallbacks {
		cb(next)
	}
	assert.Equal(t, "other-model", a.Config.AI.Model)

	code, _ := call(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, a, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
}
