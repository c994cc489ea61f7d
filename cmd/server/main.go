package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/handler"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/middleware"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/repository/docstore"
	postgresRepo "github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/repository/redis"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/config"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/logger"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/postgres"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/redis"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "treasury-api",
	})
	log.Logger = appLogger

	ctx := context.Background()

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open document store")
	}
	defer backend.Close()
	appLogger.Info().Str("driver", cfg.StorageDriver).Msg("document store ready")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Repositories
	txManager := docstore.NewTxManager(backend)
	clockRepo := docstore.NewClockRepo(backend)
	ledgerRepo := docstore.NewLedgerRepo(backend)
	orderRepo := docstore.NewOrderRepo(backend)
	portfolioRepo := docstore.NewPortfolioRepo(backend)
	auditRepo := docstore.NewAuditRepo(backend)
	policyRepo := docstore.NewPolicyRepo(backend)
	entityRepo := docstore.NewEntityRepo(backend)
	sessionStore := redisRepo.NewSessionStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	fundsUC := usecase.NewFundsUsecase(ledgerRepo, auditRepo, txManager, idGen)
	orderUC := usecase.NewOrderUsecase(orderRepo, ledgerRepo, portfolioRepo, policyRepo, auditRepo, clockRepo, txManager, idGen)
	settlementUC := usecase.NewSettlementUsecase(orderRepo, ledgerRepo, portfolioRepo, auditRepo, clockRepo, txManager, idGen)
	clockUC := usecase.NewClockUsecase(clockRepo, settlementUC, txManager)
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)
	authUC := usecase.NewAuthUsecase(sessionStore, auditRepo, entityRepo, txManager, idGen, cfg.SessionTTL)
	entityUC := usecase.NewEntityUsecase(entityRepo, policyRepo, txManager)

	if err := entityUC.Seed(ctx, cfg.DefaultEntityID, cfg.DefaultEntityName, defaultPolicy()); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to seed default entity")
	}

	// Catch up anything that came due while the service was down.
	if report, err := settlementUC.Run(ctx, cfg.DefaultEntityID); err != nil {
		appLogger.Error().Err(err).Msg("startup settlement run failed")
	} else if len(report.SettledOrders) > 0 || len(report.MaturedHoldings) > 0 {
		appLogger.Info().
			Int("settled", len(report.SettledOrders)).
			Int("matured", len(report.MaturedHoldings)).
			Msg("startup settlement run applied")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		FundsHandler:      handler.NewFundsHandler(fundsUC, settlementUC, appLogger),
		OrderHandler:      handler.NewOrderHandler(orderUC, settlementUC, appLogger),
		PortfolioHandler:  handler.NewPortfolioHandler(portfolioUC),
		AuditHandler:      handler.NewAuditHandler(auditUC),
		ClockHandler:      handler.NewClockHandler(clockUC, settlementUC, appLogger),
		AuthHandler:       handler.NewAuthHandler(authUC, cfg.DefaultEntityID),
		EntityHandler:     handler.NewEntityHandler(entityUC),
		HealthHandler:     handler.NewHealthHandler(backend, redisClient),
		SessionMiddleware: middleware.NewSessionMiddleware(sessionStore, cfg.DefaultEntityID),
		IdempotencyStore:  idempotencyStore,
		Logger:            appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

// newBackend opens the configured document store.
func newBackend(ctx context.Context, cfg *config.Config) (docstore.Backend, error) {
	switch cfg.StorageDriver {
	case "postgres":
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return postgresRepo.NewStoreBackend(pool, postgresRepo.NewRetrier(log.Logger)), nil
	case "file":
		return docstore.NewFileBackend(cfg.DataFile)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// defaultPolicy is the investment policy seeded for the demo tenant.
func defaultPolicy() *domain.Policy {
	return &domain.Policy{
		MinRating:             "A",
		MaxTenorDays:          364,
		ConcentrationCap:      decimal.RequireFromString("0.25"),
		MakerCheckerThreshold: decimal.RequireFromString("2500000"),
	}
}
