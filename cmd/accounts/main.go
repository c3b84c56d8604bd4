package main

import (
	"BankAccounts/internal/adapters/httpapi"
	"BankAccounts/internal/adapters/memory"
	"BankAccounts/internal/adapters/metrics"
	"BankAccounts/internal/adapters/postgres"
	"BankAccounts/internal/adapters/remote"
	"BankAccounts/internal/adapters/security"
	"BankAccounts/internal/core/ports"
	"BankAccounts/internal/core/services"
	"BankAccounts/internal/shared/clock"
	"BankAccounts/internal/shared/config"
	"BankAccounts/internal/shared/logger"
	"BankAccounts/internal/shared/server"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load(config.AppAccounts)
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel, string(cfg.App))
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("storage", cfg.StorageDriver).
		Str("banks_url", cfg.BanksServiceURL).
		Dur("remote_timeout", cfg.RemoteTimeout).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Storage
	var store ports.AccountStore
	var health func(ctx context.Context) error

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		secSvc, err := security.NewAESServiceFromHex(cfg.EncryptionKey, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize security service")
		}
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		if err := db.Migrate(ctx, postgres.AccountsSchema); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		store = postgres.NewAccountRepository(db, secSvc, &baseLogger)
		health = db.Ping
	default:
		baseLogger.Warn().Msg("Using in-memory storage; data is lost on restart")
		store = memory.NewAccountStore()
	}

	// 4. Remote bank check, fail-closed
	collector := metrics.NewCollector(string(cfg.App))
	bankClient := remote.NewBankClient(cfg.BanksServiceURL, cfg.RemoteTimeout)
	checker := remote.NewBankExistenceAdapter(bankClient, collector, &baseLogger)

	// 5. Service and HTTP surface
	accountSvc := services.NewAccountService(store, checker, clock.System{}, &baseLogger)
	handler := httpapi.NewAccountHandler(accountSvc, &baseLogger)
	router := httpapi.NewAccountRouter(handler, httpapi.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        collector,
		Health:         health,
	}, &baseLogger)

	if err := server.Run(ctx, cfg.Addr(), router, &baseLogger); err != nil {
		baseLogger.Fatal().Err(err).Msg("HTTP server failed")
	}
}
