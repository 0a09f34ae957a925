package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/roster/internal/logctx"
)

// capHandler is a slog.Handler that keeps the attributes of the last record,
// including those added through Logger.With.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestRequestID_GeneratesAndPreserves(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, seen, 32)
	require.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestLogging_WritesRequestLine(t *testing.T) {
	capH := &capHandler{}
	l := slog.New(capH)

	var ctxLogger *slog.Logger
	h := RequestID()(Logging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logctx.From(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hello"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, ctxLogger)
	require.Equal(t, 1, capH.count)
	require.Equal(t, "http", capH.lastMsg)
	require.Equal(t, slog.LevelInfo, capH.lastLvl)
	require.Equal(t, "rid-1", capH.attrs["request_id"])
	require.Equal(t, "POST", capH.attrs["method"])
	require.Equal(t, "/api/users", capH.attrs["path"])
	require.EqualValues(t, http.StatusTeapot, capH.attrs["status"])
	require.EqualValues(t, 5, capH.attrs["bytes"])
}

func TestLogging_AddsRoutePattern(t *testing.T) {
	capH := &capHandler{}

	r := chi.NewRouter()
	r.Use(RequestID(), Logging(slog.New(capH)))
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/42", nil))

	require.Equal(t, "/users/{id}", capH.attrs["route"])
	require.Len(t, capH.attrs["request_id"], 32)
}

func TestLogging_ServerErrorsLogAtErrorLevel(t *testing.T) {
	capH := &capHandler{}
	h := Logging(slog.New(capH))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, slog.LevelError, capH.lastLvl)
}

func TestRecover_Returns500Envelope(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "kaboom")
}

func TestRecover_LogsRequestID(t *testing.T) {
	capH := &capHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(capH))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := RequestID()(Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(HeaderRequestID, "rid-panic")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "panic", capH.lastMsg)
	require.Equal(t, "rid-panic", capH.attrs["request_id"])
	require.Equal(t, "kaboom", capH.attrs["reason"])
	require.NotEmpty(t, capH.attrs["stack"])
}

func TestRecover_ReraisesAbort(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestTimeout(t *testing.T) {
	var deadline time.Time
	var has bool
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, has = r.Context().Deadline()
	})

	Timeout(0)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, has)

	Timeout(time.Minute)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, has)
	require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	upgrade := httptest.NewRequest(http.MethodGet, "/ws", nil)
	upgrade.Header.Set("Upgrade", "WebSocket")
	Timeout(time.Minute)(inner).ServeHTTP(httptest.NewRecorder(), upgrade)
	require.False(t, has)

	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	Timeout(time.Minute)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent))
	require.True(t, has)
	require.WithinDuration(t, time.Now().Add(time.Hour), deadline, 5*time.Second)
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("http://localhost:3001")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", "http://localhost:3001")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.False(t, called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:3001", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Origin", "http://localhost:3001")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.True(t, called)
		require.Equal(t, "http://localhost:3001", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/"+string(rune('a'+i)), nil))
	}

	require.Equal(t, float64(3), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/users/{id}", "404")))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
