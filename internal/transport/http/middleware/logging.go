package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/roster/internal/logctx"
)

// Logging gives every request a logger tagged with its request id and logs
// the outcome once the handler returns. Place it after RequestID.
func Logging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := base
			if id := GetRequestID(r.Context()); id != "" {
				log = log.With(slog.String("request_id", id))
			}
			r = r.WithContext(logctx.Into(r.Context(), log))

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.count),
				slog.Duration("dur", time.Since(start)),
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				attrs = append(attrs, slog.String("route", rc.RoutePattern()))
			}

			level := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http", attrs...)
		})
	}
}
