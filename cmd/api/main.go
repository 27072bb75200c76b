package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/zayals35/My-economy-app/internal/api"
	"github.com/zayals35/My-economy-app/internal/domain/budget"
	"github.com/zayals35/My-economy-app/internal/domain/categorize"
	"github.com/zayals35/My-economy-app/internal/domain/ingest"
	"github.com/zayals35/My-economy-app/internal/domain/statement"
	"github.com/zayals35/My-economy-app/internal/extractor"
	"github.com/zayals35/My-economy-app/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	table := categorize.DefaultTable()
	parser := statement.NewParser(statement.DefaultConfig())
	pdfs := extractor.NewPDFExtractor(logger)
	svc := ingest.NewService(pdfs, parser, table, logger)

	goals := budget.Goals{
		"Food & Groceries": decimal.NewFromInt(int64(cfg.Budget.FoodGoal)),
		"Subscriptions":    decimal.NewFromInt(int64(cfg.Budget.SubscriptionsGoal)),
		"Travel":           decimal.NewFromInt(int64(cfg.Budget.TravelGoal)),
		"Shopping/Other":   decimal.NewFromInt(int64(cfg.Budget.ShoppingGoal)),
	}

	maxFileSize := int64(cfg.Upload.MaxFileSizeMB) << 20
	handler := api.NewHandler(svc, table, goals, cfg.Upload.MaxFiles, maxFileSize, logger)

	// The whole batch travels in one request body.
	bodyLimit := int(maxFileSize) * cfg.Upload.MaxFiles
	app := api.SetupRouter(handler, bodyLimit)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		return app.Shutdown()
	}
}
