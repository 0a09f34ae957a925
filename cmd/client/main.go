package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vedran77/roster/internal/client/api"
	"github.com/vedran77/roster/internal/client/cli"
	"github.com/vedran77/roster/internal/client/events"
	"github.com/vedran77/roster/internal/client/service"
	"github.com/vedran77/roster/internal/client/viewmodel"
	"github.com/vedran77/roster/internal/config"
)

func main() {
	var (
		configPath string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&verbose, "v", false, "log debug output to stderr")
	flag.Parse()

	cfg, err := config.LoadClient(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
	users := service.NewUserService(client)
	nav := viewmodel.NewNavigation()

	if cfg.Events {
		wsURL, err := events.URLFromAPI(cfg.APIURL)
		if err != nil {
			log.Warn("live updates disabled", "err", err)
		} else {
			go events.NewListener(wsURL, nav, log).Run(ctx)
		}
	}

	cli.NewApp(users, nav, os.Stdin, os.Stdout).Run(ctx)
}
