package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vedran77/roster/internal/config"
	"github.com/vedran77/roster/internal/database"
	"github.com/vedran77/roster/internal/repository"
	"github.com/vedran77/roster/internal/repository/memory"
	postgresrepo "github.com/vedran77/roster/internal/repository/postgres"
	"github.com/vedran77/roster/internal/service"
	httptransport "github.com/vedran77/roster/internal/transport/http"
	"github.com/vedran77/roster/internal/transport/http/handlers"
	"github.com/vedran77/roster/internal/transport/http/middleware"
	"github.com/vedran77/roster/internal/transport/ws"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting roster server", "env", cfg.Env, "storage", cfg.Database.Storage)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Repository
	userRepo, closeRepo, err := openUserRepo(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Realtime
	hub := ws.NewHub(log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	// Services
	userService := service.NewUserService(userRepo, cfg.Security.BcryptCost)
	userService.SetNotifier(ws.NewHubNotifier(hub))

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := httptransport.NewRouter(handlers.NewUserHandler(userService), httptransport.Options{
		Logger:         log,
		RequestTimeout: cfg.Timeouts.Request,
		CORSOrigin:     cfg.CORS.Origin,
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Events:         ws.ServeWS(hub, cfg.CORS.Origin),
	})

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Timeouts.ReadHeader,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("http listening", "addr", addr)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// Drop websocket clients first so Shutdown does not wait on them.
	stopHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", "err", err)
	}

	return nil
}

func openUserRepo(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.UserRepository, func(), error) {
	if cfg.Database.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.NewUserRepo(), func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to database")

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("migrations applied")
	}

	return postgresrepo.NewUserRepo(pool), pool.Close, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default: // local
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
