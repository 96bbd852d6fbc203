package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGenerationCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(GenerationErrors.WithLabelValues("notes"))
	ObserveGeneration("notes", time.Now(), nil)
	ObserveGeneration("notes", time.Now(), errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(GenerationErrors.WithLabelValues("notes")))
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "204")))
}

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}
