package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chowbot/chowbot/internal/bot"
	"github.com/chowbot/chowbot/internal/config"
	"github.com/chowbot/chowbot/internal/status"
	"github.com/chowbot/chowbot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chowbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	engine := bot.New()
	transport, err := telegram.New(cfg.TelegramToken, cfg.TelegramDebug, cfg.PollTimeout, engine, log)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	statusSrv := status.New(cfg.Port, transport.Snapshot, log)
	go func() {
		if err := statusSrv.Start(); err != nil {
			log.Error("Status server failed", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := transport.Run(ctx); err != nil {
		return fmt.Errorf("transport: %w", err)
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := statusSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Stopped")
	return nil
}
