package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/auth"
	"github.com/osse101/FairyGrove_Go/internal/bootstrap"
	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
	"github.com/osse101/FairyGrove_Go/internal/middleware"
	"github.com/osse101/FairyGrove_Go/internal/naming"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/player"
	"github.com/osse101/FairyGrove_Go/internal/server"
)

const botAPITimeout = 10 * time.Second

// @title Fairy Grove API
// @version 1.0
// @description Game economy backend for the Fairy Grove Telegram Mini App.
// @BasePath /
// @securityDefinitions.apikey TelegramInitData
// @in header
// @name X-Telegram-Init-Data
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", w)
	}
	slog.Info("Starting Fairy Grove", "version", cfg.Version, "environment", cfg.Environment, "db_driver", cfg.DBDriver)

	ctx := context.Background()

	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	eventLog := eventlog.NewService(store)
	events, err := bootstrap.InitializeEventSystem(cfg, eventLog)
	if err != nil {
		_ = store.Close()
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	publisher := events.Publisher
	pool, sched := bootstrap.InitializeWorkers(cfg, eventLog)

	var completer naming.Completer
	if cfg.NamingEnabled() {
		completer = naming.NewChatClient(cfg.NamingAPIURL, cfg.NamingAPIKey, cfg.NamingModel, cfg.NamingTimeout)
	}
	namer := naming.NewGenerator(completer, naming.WithTimeout(cfg.NamingTimeout))

	cat := catalog.Default()
	eng := engine.New(cat, idgen.New())
	players := player.NewService(store, eng, publisher, namer, player.WithMaxSaveRetries(cfg.MaxSaveRetries))

	var bot payment.Bot
	if cfg.PaymentsEnabled() {
		bot = payment.NewBotClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, botAPITimeout)
	}
	payments := payment.NewService(bot, cat, players, store)

	var verifier *auth.Verifier
	if cfg.TelegramBotToken != "" {
		verifier = auth.NewVerifier(cfg.TelegramBotToken, cfg.InitDataMaxAge)
	}

	srv := server.NewServer(cfg, server.Deps{
		Store:         store,
		Catalog:       cat,
		Players:       players,
		EventLog:      eventLog,
		Payments:      payments,
		Authenticator: middleware.NewAuthenticator(verifier, cfg.DevAuthAllowed()),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
		Store:              store,
	})
}
