package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylemart_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stylemart_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stylemart_orders_created_total",
		Help: "Orders successfully created from carts.",
	})

	paymentsCaptured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylemart_payments_captured_total",
		Help: "Payment capture attempts by outcome.",
	}, []string{"outcome"})

	webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stylemart_webhook_events_total",
		Help: "Webhook deliveries by event type.",
	}, []string{"event_type"})
)

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
