package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP 请求指标
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 业务指标
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_auth_events_total",
			Help: "Authentication events by kind and outcome",
		},
		[]string{"event", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, AuthEvents)
}

// Middleware 为 Gin 记录请求计数与耗时
// 未匹配路由统一记为 "unmatched"，避免标签基数膨胀
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 端点
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordAuth 记录认证事件（register/login/change_password × success/failure）
func RecordAuth(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}
