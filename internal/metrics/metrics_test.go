package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("studyhall")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/halls/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/halls/1", "/halls/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/halls/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	m := New("studyhall")
	m.SeatTransitioned("MAINTENANCE", 3)
	m.ScheduleRejected("SHIFT_OVERLAP")
	m.LayoutReplaced("ok")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `studyhall_seat_status_transitions_total{status="MAINTENANCE"} 3`))
	assert.True(t, strings.Contains(body, `studyhall_schedule_rejections_total{code="SHIFT_OVERLAP"} 1`))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SeatTransitioned("AVAILABLE", 1)
	m.ClientConnected()
	m.LockWaited(0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
