package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	// Latency of HTTP handlers by route pattern
	RequestDuration *prometheus.HistogramVec
	// Total number of HTTP requests by route pattern and status
	RequestsTotal *prometheus.CounterVec
	// Outcome of transactional emails: delivered / failed
	Notifications *prometheus.CounterVec
	// Orders created at checkout
	OrdersPlaced prometheus.Counter
}

// New регистрирует метрики в переданном реестре. В тестах используется свой prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "Latency of HTTP handlers",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_notifications_total",
			Help: "Transactional emails by kind and result",
		}, []string{"kind", "result"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Orders created at checkout",
		}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestsTotal, m.Notifications, m.OrdersPlaced)

	return m
}

// Middleware считает запросы по шаблону маршрута chi, а не по сырому URL
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveNotification implements the observer hook of the notification dispatcher
func (m *Metrics) ObserveNotification(kind string, delivered bool) {
	result := "failed"
	if delivered {
		result = "delivered"
	}
	m.Notifications.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveOrderPlaced() {
	m.OrdersPlaced.Inc()
}
