package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/api"
	"fintrack/internal/api/handlers"
	"fintrack/internal/ledger"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"
	"fintrack/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting fintrack service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	transferRepo := repository.NewTransferRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	dashRepo := repository.NewDashboardRepository(db, appLogger)
	ledgerStore := repository.NewLedgerStore(db, appLogger)

	// Initialize the ledger engine
	engine := ledger.NewEngine(ledgerStore, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	accountService := service.NewAccountService(accountRepo, appLogger)
	txService := service.NewTransactionService(engine, txRepo, appLogger)
	transferService := service.NewTransferService(engine, transferRepo, appLogger)
	goalService := service.NewGoalService(engine, goalRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	dashService := service.NewDashboardService(dashRepo, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		Account:     handlers.NewAccountHandler(accountService, appLogger),
		Transaction: handlers.NewTransactionHandler(txService, appLogger),
		Transfer:    handlers.NewTransferHandler(transferService, appLogger),
		Goal:        handlers.NewGoalHandler(goalService, appLogger),
		Category:    handlers.NewCategoryHandler(categoryService, appLogger),
		Dashboard:   handlers.NewDashboardHandler(dashService, appLogger),
	}, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
