package main

import (
	"BankAccounts/internal/adapters/httpapi"
	"BankAccounts/internal/adapters/memory"
	"BankAccounts/internal/adapters/metrics"
	"BankAccounts/internal/adapters/postgres"
	redisadapter "BankAccounts/internal/adapters/redis"
	"BankAccounts/internal/adapters/remote"
	"BankAccounts/internal/adapters/security"
	"BankAccounts/internal/core/domain"
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
	cfg, err := config.Load(config.AppBanks)
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel, string(cfg.App))
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("storage", cfg.StorageDriver).
		Str("accounts_url", cfg.AccountsServiceURL).
		Dur("remote_timeout", cfg.RemoteTimeout).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Security Service (postgres columns and cached banks)
	var secSvc ports.SecurityPort
	if cfg.EncryptionKey != "" {
		secSvc, err = security.NewAESServiceFromHex(cfg.EncryptionKey, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize security service")
		}
	}

	// 4. Initialize Storage
	var store ports.BankStore
	var health func(ctx context.Context) error

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		if err := db.Migrate(ctx, postgres.BanksSchema); err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		store = postgres.NewBankRepository(db, secSvc, &baseLogger)
		health = db.Ping
	default:
		baseLogger.Warn().Msg("Using in-memory storage; data is lost on restart")
		store = memory.NewBankStore()
	}

	// 5. Optional read cache
	if cfg.Redis.Addr != "" {
		rdb, err := redisadapter.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		cache := redisadapter.NewViewCache[domain.Bank](rdb, cfg.BankCacheTTL, secSvc, &baseLogger)
		store = redisadapter.NewCachedBankStore(store, cache, cfg.RequestTimeout)
		baseLogger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.BankCacheTTL).Msg("Bank cache enabled")
	}

	// 6. Remote account count, fail-open
	collector := metrics.NewCollector(string(cfg.App))
	accountClient := remote.NewAccountClient(cfg.AccountsServiceURL, cfg.RemoteTimeout)
	counter := remote.NewAccountCountAdapter(accountClient, collector, &baseLogger)

	// 7. Service and HTTP surface
	bankSvc := services.NewBankService(store, counter, clock.System{}, &baseLogger)
	selfClient := remote.NewBankClient(cfg.SelfURL, cfg.RemoteTimeout)
	handler := httpapi.NewBankHandler(bankSvc, selfClient, &baseLogger)
	router := httpapi.NewBankRouter(handler, httpapi.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        collector,
		Health:         health,
	}, &baseLogger)

	if err := server.Run(ctx, cfg.Addr(), router, &baseLogger); err != nil {
		baseLogger.Fatal().Err(err).Msg("HTTP server failed")
	}
}
