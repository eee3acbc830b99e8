package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/fabianqube/Telegram-Weather-Bot/internal/adapter/http"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/adapter/nominatim"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/adapter/openweather"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/adapter/telegram"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/bot"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/config"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/observability"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var geocoder domain.Geocoder = nominatim.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderTimeout, metrics, logger)
	geocoder = nominatim.NewCachedGeocoder(geocoder, cfg.GeocoderCacheSize, metrics)

	weather := openweather.NewClient(cfg.WeatherToken, cfg.WeatherBaseURL, cfg.WeatherTimeout, metrics, logger)
	profiles := store.New(cfg.UserDataFile, logger)
	sessions := bot.NewMemorySessionStore()

	transport, err := telegram.New(cfg.BotToken, cfg.PollTimeout, logger)
	if err != nil {
		logger.Error("failed to create telegram transport", "error", err)
		os.Exit(1)
	}

	dispatcher := bot.NewDispatcher(sessions, geocoder, weather, profiles, transport, logger, metrics)
	transport.Register(dispatcher)

	srv := httpadapter.NewServer(cfg.HTTPAddr, transport, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go transport.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	transport.Stop()

	logger.Info("shutdown complete")
}
