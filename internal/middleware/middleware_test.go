package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") })

	Chain(final, mw("first"), mw("second")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestResponseWriter_CapturesFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrap(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	_, _ = rw.Write([]byte("ok"))

	assert.Equal(t, http.StatusCreated, rw.statusCode)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Same(t, rw, wrap(rw), "wrapping twice reuses the writer")
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	m := NewMetrics()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/entries/{date}/{entry_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Chain(mux, m.Middleware)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/entries/2025-09-16/a", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/entries/2025-09-16/b", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "DELETE /api/entries/{date}/{entry_id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.requests.WithLabelValues("GET", "GET /api/entries", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "workouts_http_requests_total"))
}

func TestRecoverer_TurnsPanicIntoServerError(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("store exploded") })
	rec := httptest.NewRecorder()

	Chain(panicking, chimw.RequestID, RequestLogging, chimw.Recoverer).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entries?date=2025-09-16", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
