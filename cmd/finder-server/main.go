package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"finder/internal/app"
	"finder/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadServiceConfig()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := app.NewLogger(os.Stderr, cfg.LogLevel)

	svc, err := app.NewService(cfg, log)
	if err != nil {
		log.Error("wire service", "err", err)
		os.Exit(1)
	}

	log.Info("starting finder service", "data", cfg.DataDir, "sources", svc.Runner.Sources())
	if err := server.Run(ctx, cfg.Addr, svc.Server.Handler(), log); err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
	log.Info("finder service stopped")
}
