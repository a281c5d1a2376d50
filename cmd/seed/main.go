package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"fueleu/fleet-portal/fleet-portal-backend/internal/banking"
	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
	"fueleu/fleet-portal/fleet-portal-backend/internal/config"
	"fueleu/fleet-portal/fleet-portal-backend/internal/routes"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS routes (
		id UUID PRIMARY KEY,
		ship_id TEXT NOT NULL,
		vessel_type TEXT NOT NULL,
		fuel_type TEXT NOT NULL,
		year INT NOT NULL,
		ghg_intensity DOUBLE PRECISION NOT NULL,
		fuel_consumption DOUBLE PRECISION NOT NULL,
		distance DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_baseline BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS compliance_records (
		id UUID PRIMARY KEY,
		ship_id TEXT NOT NULL,
		year INT NOT NULL,
		balance DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (ship_id, year)
	)`,
	`CREATE TABLE IF NOT EXISTS bank_entries (
		id UUID PRIMARY KEY,
		ship_id TEXT NOT NULL,
		year INT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pools (
		id UUID PRIMARY KEY,
		year INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pool_members (
		id UUID PRIMARY KEY,
		pool_id UUID NOT NULL REFERENCES pools(id),
		ship_id TEXT NOT NULL,
		cb_before DOUBLE PRECISION NOT NULL,
		cb_after DOUBLE PRECISION NOT NULL
	)`,
}

type seedRoute struct {
	shipID          string
	vesselType      string
	fuelType        string
	year            int
	ghgIntensity    float64
	fuelConsumption float64
	distance        float64
	baseline        bool
}

var demoFleet = []seedRoute{
	{"IMO9074729", "Container", "HFO", 2025, 91.2, 5200, 41000, true},
	{"IMO9074729", "Container", "LNG", 2025, 76.8, 1400, 9800, false},
	{"IMO9321483", "Bulk Carrier", "VLSFO", 2025, 88.1, 3100, 28000, false},
	{"IMO9321483", "Bulk Carrier", "HFO", 2025, 92.4, 900, 7600, false},
	{"IMO9419802", "Tanker", "MGO", 2025, 85.6, 2700, 22500, false},
	{"IMO9511155", "RoPax", "Bio-blend", 2025, 72.3, 1600, 12100, false},
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Fatal("Failed to create schema", zap.Error(err))
		}
	}

	routesRepo := routes.NewPostgresRepository(db)

	var baselineID uuid.UUID
	for _, seed := range demoFleet {
		now := time.Now()
		route := &routes.Route{
			ID:              uuid.New(),
			ShipID:          seed.shipID,
			VesselType:      seed.vesselType,
			FuelType:        seed.fuelType,
			Year:            seed.year,
			GHGIntensity:    seed.ghgIntensity,
			FuelConsumption: seed.fuelConsumption,
			Distance:        seed.distance,
			TotalEmissions:  seed.ghgIntensity * seed.fuelConsumption * compliance.EnergyConversionFactor,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := routesRepo.Create(ctx, route); err != nil {
			logger.Fatal("Failed to seed route", zap.String("ship_id", seed.shipID), zap.Error(err))
		}
		if seed.baseline {
			baselineID = route.ID
		}
	}

	if baselineID != uuid.Nil {
		if err := routesRepo.SetBaseline(ctx, baselineID); err != nil {
			logger.Fatal("Failed to set baseline route", zap.Error(err))
		}
	}

	// Derive initial compliance records for the seeded fleet.
	bankRepo := banking.NewPostgresRepository(db)
	complianceRepo := compliance.NewPostgresRepository(db)
	complianceService := compliance.NewService(complianceRepo, bankRepo, nil, logger)

	pairs, err := routesRepo.ShipYears(ctx)
	if err != nil {
		logger.Fatal("Failed to enumerate ship years", zap.Error(err))
	}
	for _, pair := range pairs {
		if _, err := complianceService.Recompute(ctx, pair.ShipID, pair.Year); err != nil {
			logger.Fatal("Failed to compute compliance record",
				zap.String("ship_id", pair.ShipID), zap.Error(err))
		}
	}

	logger.Info("Seed complete",
		zap.Int("routes", len(demoFleet)),
		zap.Int("compliance_records", len(pairs)))
}
