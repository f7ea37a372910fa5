package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-online-api/internal/lib/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/items/{item_slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, slug := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/items/"+slug, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/items/{item_slug}", "404"))
	assert.Equal(t, float64(2), got)
}

func TestObserveNotification(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveNotification("activation", true)
	m.ObserveNotification("activation", false)
	m.ObserveNotification("activation", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Notifications.WithLabelValues("activation", "delivered")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Notifications.WithLabelValues("activation", "failed")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.ObserveOrderPlaced()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "shop_orders_placed_total 1"))
}
