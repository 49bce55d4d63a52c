// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ozish-bot/internal/bot"
	"ozish-bot/internal/config"
	"ozish-bot/internal/content"
	"ozish-bot/internal/server"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

func main() {
	l := logger.New()
	l.Info("Starting Ozish 30 Bot...")

	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config", err)
	}

	if cfg.Telegram.Token == "" {
		l.Fatal("Telegram token is not configured")
	}
	if cfg.Telegram.AdminID == 0 {
		l.Fatal("Admin ID is not configured")
	}
	if cfg.Payment.CardNumber == "" {
		l.Fatal("Payment card number is not configured")
	}

	st, err := store.Open(cfg.Storage.DataDir, l)
	if err != nil {
		l.Fatal("Failed to open store", err)
	}
	defer st.Close()

	contentProvider := content.NewFileProvider(cfg.Content.Dir)

	telegramBot, err := bot.NewTelegramBot(cfg, st, contentProvider, l)
	if err != nil {
		l.Fatal("Failed to create Telegram bot", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.Info("Starting Telegram bot...")
	if err := telegramBot.Start(ctx); err != nil {
		l.Fatal("Failed to start Telegram bot", err)
	}
	l.Info("Telegram bot started successfully")

	httpServer := server.NewServer(cfg.Server.Port, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down bot...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Error("Error during HTTP server shutdown", err)
	}
	if err := telegramBot.Stop(shutdownCtx); err != nil {
		l.Error("Error during bot shutdown", err)
	}

	l.Info("Bot stopped successfully")
}
