package routes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a route does not exist.
var ErrNotFound = errors.New("route not found")

// ErrNoBaseline is returned when no route is flagged as baseline.
var ErrNoBaseline = errors.New("no baseline route is set")

// Repository defines the interface for route data access.
type Repository interface {
	Create(ctx context.Context, route *Route) error
	Get(ctx context.Context, id uuid.UUID) (*Route, error)
	List(ctx context.Context, filters *RouteFilters) ([]*Route, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetBaseline clears every baseline flag and sets the target
	// route's flag within a single transaction.
	SetBaseline(ctx context.Context, id uuid.UUID) error
	GetBaseline(ctx context.Context) (*Route, error)

	// ShipYears returns the distinct (ship, year) pairs present in
	// the route table.
	ShipYears(ctx context.Context) ([]ShipYear, error)
}

// ShipYear identifies one ship's routes for one reporting year.
type ShipYear struct {
	ShipID string `db:"ship_id"`
	Year   int    `db:"year"`
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL route repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const routeColumns = `id, ship_id, vessel_type, fuel_type, year, ghg_intensity,
	fuel_consumption, distance, total_emissions, is_baseline, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, route *Route) error {
	query := `
		INSERT INTO routes (
			id, ship_id, vessel_type, fuel_type, year, ghg_intensity,
			fuel_consumption, distance, total_emissions, is_baseline,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		route.ID, route.ShipID, route.VesselType, route.FuelType, route.Year,
		route.GHGIntensity, route.FuelConsumption, route.Distance,
		route.TotalEmissions, route.IsBaseline, route.CreatedAt, route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	var route Route
	if err := r.db.GetContext(ctx, &route, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return &route, nil
}

func (r *PostgresRepository) List(ctx context.Context, filters *RouteFilters) ([]*Route, error) {
	conditions := []string{}
	args := []interface{}{}

	if filters != nil {
		if filters.ShipID != nil {
			args = append(args, *filters.ShipID)
			conditions = append(conditions, fmt.Sprintf("ship_id = $%d", len(args)))
		}
		if filters.Year != nil {
			args = append(args, *filters.Year)
			conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
		}
	}

	query := `SELECT ` + routeColumns + ` FROM routes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY year DESC, ship_id, created_at"

	var result []*Route
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) SetBaseline(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE routes SET is_baseline = FALSE, updated_at = $1 WHERE is_baseline`, time.Now()); err != nil {
		return fmt.Errorf("failed to clear baseline flags: %w", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE routes SET is_baseline = TRUE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set baseline flag: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit baseline change: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetBaseline(ctx context.Context) (*Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE is_baseline LIMIT 1`

	var route Route
	if err := r.db.GetContext(ctx, &route, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoBaseline
		}
		return nil, fmt.Errorf("failed to get baseline route: %w", err)
	}

	return &route, nil
}

func (r *PostgresRepository) ShipYears(ctx context.Context) ([]ShipYear, error) {
	var pairs []ShipYear
	query := `SELECT DISTINCT ship_id, year FROM routes ORDER BY ship_id, year`
	if err := r.db.SelectContext(ctx, &pairs, query); err != nil {
		return nil, fmt.Errorf("failed to list ship years: %w", err)
	}

	return pairs, nil
}
