package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/roster/internal/transport/http/handlers"
	"github.com/vedran77/roster/internal/transport/http/middleware"
)

// BasePath prefixes every resource route.
const BasePath = "/api"

// Options configures NewRouter. Nil handlers leave their routes unregistered.
type Options struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	CORSOrigin     string
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	Events         http.Handler
}

func NewRouter(users *handlers.UserHandler, opts Options) http.Handler {
	root := chi.NewRouter()

	root.Use(
		middleware.RequestID(),
		middleware.Recover(),
		middleware.Logging(opts.Logger),
		middleware.CORS(opts.CORSOrigin),
	)
	if opts.Metrics != nil {
		root.Use(opts.Metrics.Middleware())
	}

	system := handlers.NewSystemHandler()
	root.Get("/", system.Root)
	root.Get("/health", system.Health)
	root.Get("/livez", system.Livez)
	if opts.MetricsHandler != nil {
		root.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	root.Route(BasePath, func(r chi.Router) {
		// Timeout lets websocket upgrades through without a deadline.
		r.Use(middleware.Timeout(opts.RequestTimeout))
		users.Routes(r)
		if opts.Events != nil {
			r.Method(http.MethodGet, "/ws", opts.Events)
		}
	})

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Route not found"}` + "\n"))
	})

	return root
}
