package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/telefly/internal/bot"
	"github.com/ivanoskov/telefly/internal/charts"
	"github.com/ivanoskov/telefly/internal/config"
	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/logging"
	"github.com/ivanoskov/telefly/internal/repository"
	"github.com/ivanoskov/telefly/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("config.LoadConfig")
	}

	logger := logging.SetupLogging(cfg.LogLevel)
	logger.Info("telefly starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("repository.Open")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.WithError(err).Error("repository.Close")
		}
	}()

	ledger := func(baseURL, token string) service.Ledger {
		return firefly.NewClient(baseURL, token, http.DefaultClient)
	}
	controller := service.NewController(repo, ledger, charts.NewChartGenerator(), logger)

	b, err := bot.NewBot(cfg.TelegramToken, controller, logger)
	if err != nil {
		logger.WithError(err).Fatal("bot.NewBot")
	}

	if err := b.Start(ctx); err != nil {
		logger.WithError(err).Error("bot.Start")
	}
	logger.Info("telefly stopped")
}
