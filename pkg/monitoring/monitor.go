package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AttemptsJoined = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mindclass_attempts_joined_total",
		Help: "Test attempts started with a valid access code",
	})

	JoinRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mindclass_join_rejected_total",
		Help: "Join attempts rejected for an unknown or non-live code",
	})

	ResultsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindclass_results_submitted_total",
			Help: "Test results emitted, by how the attempt ended",
		},
		[]string{"trigger"},
	)

	ActiveAttempts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mindclass_active_attempts",
		Help: "Attempts with a running countdown",
	})

	GenerationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindclass_generation_errors_total",
			Help: "Failed content generation calls",
		},
		[]string{"kind"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mindclass_generation_duration_seconds",
			Help:    "Latency of content generation calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"kind"},
	)

	StreamMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindclass_stream_messages_total",
			Help: "Attempt websocket messages, by type and direction",
		},
		[]string{"type", "direction"},
	)

	registerOnce sync.Once
)

// Init registers every collector with the default registry. Later calls
// are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(AttemptsJoined)
		prometheus.MustRegister(JoinRejected)
		prometheus.MustRegister(ResultsSubmitted)
		prometheus.MustRegister(ActiveAttempts)
		prometheus.MustRegister(GenerationErrors)
		prometheus.MustRegister(GenerationDuration)
		prometheus.MustRegister(StreamMessages)
	})
}

// ObserveGeneration records one generator call.
func ObserveGeneration(kind string, start time.Time, err error) {
	GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		GenerationErrors.WithLabelValues(kind).Inc()
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
