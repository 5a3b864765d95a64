package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tinybank/backend/docs"
	"github.com/tinybank/backend/internal/audit"
	"github.com/tinybank/backend/internal/config"
	"github.com/tinybank/backend/internal/database"
	"github.com/tinybank/backend/internal/events"
	"github.com/tinybank/backend/internal/handlers"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/logger"
	"github.com/tinybank/backend/internal/services"
	"go.uber.org/zap"
)

// @title Tiny Bank API
// @version 1.0
// @description In-memory ledger: users, accounts, deposits, withdrawals and transfers
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	docs.SwaggerInfo.Title = "Tiny Bank API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	var rdb *redis.Client
	if cfg.Events.Driver == config.EventsDriverRedis {
		rdb = database.InitRedis(context.Background(), cfg.Redis, zlog)
		if rdb != nil {
			defer rdb.Close()
		}
	}

	publisher := events.Connect(cfg.Events, rdb, zlog)
	defer func() {
		if err := publisher.Close(); err != nil {
			zlog.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	accounts := ledger.NewAccountTable()
	l := ledger.New(ledger.NewUserStore(), accounts)
	auditLogger := audit.NewLogger(zlog)

	userService := services.NewUserService(l, auditLogger, zlog)
	accountService := services.NewAccountService(l, cfg.Ledger, zlog)
	transactionService := services.NewTransactionService(l, publisher, auditLogger, zlog)
	iso20022Service := services.NewISO20022Service(l, cfg.Ledger)
	reconciliationService := services.NewReconciliationService(accounts, zlog)

	if err := reconciliationService.Schedule(cfg.Reconcile.Schedule); err != nil {
		zlog.Fatal("invalid reconciliation schedule",
			zap.String("schedule", cfg.Reconcile.Schedule), zap.Error(err))
	}
	reconciliationService.Start()

	router := handlers.NewRouter(handlers.Handlers{
		Users:          handlers.NewUserHandler(userService),
		Accounts:       handlers.NewAccountHandler(accountService),
		Transactions:   handlers.NewTransactionHandler(transactionService, iso20022Service),
		Reconciliation: handlers.NewReconciliationHandler(reconciliationService),
	}, cfg.Server.RequestTimeout, zlog)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("server starting", zap.String("addr", server.Addr),
			zap.String("events_driver", cfg.Events.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = reconciliationService.Shutdown(ctx)

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		return
	}

	zlog.Info("server stopped")
}
