package compliance

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceRecord holds a ship's derived compliance balance for one
// reporting year, in gCO2eq. There is one logical record per
// (ship, year); Recompute upserts it idempotently from route data.
type ComplianceRecord struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ShipID    string    `db:"ship_id" json:"ship_id"`
	Year      int       `db:"year" json:"year"`
	Balance   float64   `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RouteFigures is the subset of route telemetry the calculator needs.
type RouteFigures struct {
	GHGIntensity    float64 `db:"ghg_intensity"`
	FuelConsumption float64 `db:"fuel_consumption"`
}

// ShipStatus is a ship's compliance position for a year: the derived
// balance, the banked running total, and the compliant flag taken
// from the fuel-weighted mean intensity of its routes.
type ShipStatus struct {
	ShipID    string  `json:"ship_id"`
	Year      int     `json:"year"`
	Balance   float64 `json:"balance"`
	Banked    float64 `json:"banked"`
	Compliant bool    `json:"compliant"`
}
