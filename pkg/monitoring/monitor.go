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

	AttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pygely_attempts_total",
			Help: "Graded challenge attempts",
		},
		[]string{"type", "correct"},
	)

	RewardsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pygely_rewards_granted_total",
			Help: "Rewards appended to the ledger",
		},
		[]string{"kind"},
	)

	HintsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pygely_hints_served_total",
			Help: "Hints served by level",
		},
		[]string{"level"},
	)

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AttemptsTotal,
			RewardsGranted,
			HintsServed,
		)
	})
}

func RecordAttempt(kind string, correct bool) {
	AttemptsTotal.WithLabelValues(kind, strconv.FormatBool(correct)).Inc()
}

func RecordReward(kind string) {
	RewardsGranted.WithLabelValues(kind).Inc()
}

func RecordHint(level int) {
	HintsServed.WithLabelValues(strconv.Itoa(level)).Inc()
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
