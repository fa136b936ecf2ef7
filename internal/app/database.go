package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/circuitbreaker"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

// DatabaseComponents bundles the MongoDB-backed repositories, the
// logging service, and the circuit breakers guarding them.
type DatabaseComponents struct {
	StockProfilesRepo           repository.StockProfilesRepositoryInterface
	LoggingService              service.LoggingService
	StockProfilesCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker          *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the storage stack.
// A disabled config or a failed connection yields nil, and the service
// runs on without persistence.
func InitializeDatabase(cfg config.DatabaseConfig, planner config.PlannerConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), int(cfg.LogsTTL.Hours()/24)); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
		})
	}

	profilesCB := breaker("mongodb-stock-profiles")
	profiles := repository.NewStockProfilesRepositoryWithCircuitBreaker(
		repository.NewStockProfilesRepository(db), profilesCB)

	logsCB := breaker("mongodb-logs")
	logs := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db), logsCB)

	if err := seedDefaultStockProfile(profiles, planner); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default stock profile")
	}

	return &DatabaseComponents{
		StockProfilesRepo:           profiles,
		LoggingService:              service.NewLoggingService(logs),
		StockProfilesCircuitBreaker: profilesCB,
		LogsCircuitBreaker:          logsCB,
	}
}

// seedDefaultStockProfile creates an active profile from the planner
// fallbacks when the collection has none, so fresh deployments serve
// sensible defaults immediately.
func seedDefaultStockProfile(repo repository.StockProfilesRepositoryInterface, planner config.PlannerConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx)
	if err != nil || active != nil {
		return err
	}

	fields := repository.StockProfileFields{
		Name:        "default",
		StockLength: planner.DefaultStockLength,
		LengthUnit:  planner.DefaultLengthUnit,
		KerfWidth:   planner.DefaultKerfWidth,
		KerfUnit:    planner.DefaultKerfUnit,
		MaxBars:     planner.DefaultMaxBars,
	}
	if _, err := repo.Create(ctx, fields, "system"); err != nil {
		return err
	}
	log.Info().
		Float64("stock_length", fields.StockLength).
		Str("length_unit", fields.LengthUnit).
		Int("max_bars", fields.MaxBars).
		Msg("Created default stock profile")
	return nil
}
