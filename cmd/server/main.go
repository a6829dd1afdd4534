package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"feabscopy/internal/api"
	"feabscopy/internal/config"
	"feabscopy/internal/database"
	"feabscopy/internal/gateway"
	"feabscopy/internal/ledger"
	"feabscopy/internal/logger"
	"feabscopy/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(&cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Payment provider client
	gw := gateway.NewClient(&cfg.Gateway, logger.Named(log, "gateway"))

	// Ledger service
	svc := ledger.NewService(logger.Named(log, "ledger"), db, gw, ledger.RulesFromConfig(cfg.Platform))

	// Maturity sweep scheduler
	sched := scheduler.NewScheduler(logger.Named(log, "scheduler"), svc)
	if err := sched.Register(); err != nil {
		log.Fatal("Failed to register scheduled tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// HTTP API
	handler := api.NewHandler(logger.Named(log, "api"), svc)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting ledger server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
