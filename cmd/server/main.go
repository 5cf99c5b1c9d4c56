package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/config"
	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/internal/repository/sheets"
	"github.com/tacovision/backend/internal/scheduler"
	"github.com/tacovision/backend/internal/server/handlers"
	"github.com/tacovision/backend/internal/server/router"
	assistsvc "github.com/tacovision/backend/internal/service/assist"
	authsvc "github.com/tacovision/backend/internal/service/auth"
	inventorysvc "github.com/tacovision/backend/internal/service/inventory"
	schedulesvc "github.com/tacovision/backend/internal/service/schedule"
	"github.com/tacovision/backend/pkg/clients/anthropic"
	"github.com/tacovision/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("APP_DEBUG") == "true"))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Initialize AI client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, schedule extraction and ai tools disabled")
	}

	// Initialize optional shipment export
	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("shipment order export enabled")
	}

	sessions := authsvc.NewSessionStore(cfg.Auth.SessionTTL)
	authService := authsvc.NewService(mongoRepo, sessions, logger.Named(baseLogger, "svc.auth"))
	inventoryService := inventorysvc.NewService(mongoRepo, exporter, cfg.Inventory.OverstockMultiplier, logger.Named(baseLogger, "svc.inventory"))
	scheduleService := schedulesvc.NewService(mongoRepo, aiClient, cfg.Schedule.WeekAnchor, logger.Named(baseLogger, "svc.schedule"))
	assistService := assistsvc.NewService(mongoRepo, aiClient, logger.Named(baseLogger, "svc.assist"))

	if cfg.Auth.SeedDefaultAdmin {
		if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
			baseLogger.Fatal("failed to seed default admin", zap.Error(err))
		}
	}

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventoryService, logger.Named(baseLogger, "handlers.inventory")),
		Schedule:  handlers.NewScheduleHandler(scheduleService, logger.Named(baseLogger, "handlers.schedule")),
		Users:     handlers.NewUserHandler(authService, logger.Named(baseLogger, "handlers.users")),
		Assist:    handlers.NewAssistHandler(assistService, logger.Named(baseLogger, "handlers.assist")),
	}, logger.Named(baseLogger, "router"))

	// Initialize scheduler
	sched := scheduler.NewScheduler(cfg.Budget, inventoryService, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
