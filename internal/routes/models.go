package routes

import (
	"time"

	"github.com/google/uuid"
)

// Route is a single recorded voyage with its fuel and emissions
// telemetry. At most one route carries the baseline flag at any time;
// the repository enforces that inside SetBaseline.
type Route struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ShipID          string    `db:"ship_id" json:"ship_id"`
	VesselType      string    `db:"vessel_type" json:"vessel_type"`
	FuelType        string    `db:"fuel_type" json:"fuel_type"`
	Year            int       `db:"year" json:"year"`
	GHGIntensity    float64   `db:"ghg_intensity" json:"ghg_intensity"`
	FuelConsumption float64   `db:"fuel_consumption" json:"fuel_consumption"`
	Distance        float64   `db:"distance" json:"distance"`
	TotalEmissions  float64   `db:"total_emissions" json:"total_emissions"`
	IsBaseline      bool      `db:"is_baseline" json:"is_baseline"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRouteRequest is the payload for registering a route.
type CreateRouteRequest struct {
	ShipID          string  `json:"ship_id" binding:"required"`
	VesselType      string  `json:"vessel_type" binding:"required"`
	FuelType        string  `json:"fuel_type" binding:"required"`
	Year            int     `json:"year" binding:"required"`
	GHGIntensity    float64 `json:"ghg_intensity" binding:"required"`
	FuelConsumption float64 `json:"fuel_consumption" binding:"required"`
	Distance        float64 `json:"distance"`
	TotalEmissions  float64 `json:"total_emissions"`
}

// RouteFilters narrows route listings.
type RouteFilters struct {
	ShipID *string
	Year   *int
}

// RouteComparison pairs a route with its GHG intensity difference
// against the current baseline route, in percent.
type RouteComparison struct {
	Route       Route   `json:"route"`
	PercentDiff float64 `json:"percent_diff"`
}
