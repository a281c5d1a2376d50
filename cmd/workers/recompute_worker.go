package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fueleu/fleet-portal/fleet-portal-backend/internal/banking"
	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
	"fueleu/fleet-portal/fleet-portal-backend/internal/config"
	"fueleu/fleet-portal/fleet-portal-backend/internal/routes"
)

// RecomputeWorker re-derives every ship's compliance record from
// stored route telemetry on a cron schedule. Recomputation is
// idempotent, so overlapping runs are harmless.
type RecomputeWorker struct {
	routes     routes.Repository
	compliance *compliance.Service
	logger     *zap.Logger
}

// NewRecomputeWorker creates a new recompute worker.
func NewRecomputeWorker(routesRepo routes.Repository, complianceService *compliance.Service, logger *zap.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		routes:     routesRepo,
		compliance: complianceService,
		logger:     logger,
	}
}

// Run recomputes the compliance record of every (ship, year) pair
// present in the route table.
func (w *RecomputeWorker) Run(ctx context.Context) {
	pairs, err := w.routes.ShipYears(ctx)
	if err != nil {
		w.logger.Error("Failed to enumerate ship years", zap.Error(err))
		return
	}

	var failed int
	for _, pair := range pairs {
		if _, err := w.compliance.Recompute(ctx, pair.ShipID, pair.Year); err != nil {
			failed++
			w.logger.Error("Failed to recompute compliance record",
				zap.String("ship_id", pair.ShipID),
				zap.Int("year", pair.Year),
				zap.Error(err))
		}
	}

	w.logger.Info("Recompute pass finished",
		zap.Int("ships", len(pairs)),
		zap.Int("failed", failed))
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	bankRepo := banking.NewPostgresRepository(db)
	complianceRepo := compliance.NewPostgresRepository(db)
	complianceService := compliance.NewService(complianceRepo, bankRepo, nil, logger)
	routesRepo := routes.NewPostgresRepository(db)

	worker := NewRecomputeWorker(routesRepo, complianceService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run once at startup, then on the configured schedule.
	worker.Run(ctx)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Worker.RecomputeSchedule, func() { worker.Run(ctx) }); err != nil {
		logger.Fatal("Invalid recompute schedule",
			zap.String("schedule", cfg.Worker.RecomputeSchedule), zap.Error(err))
	}
	scheduler.Start()

	logger.Info("Recompute worker started",
		zap.String("schedule", cfg.Worker.RecomputeSchedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Recompute worker shutting down")
	cancel()
	<-scheduler.Stop().Done()
}
