package compliance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no compliance record exists for a
// (ship, year) pair.
var ErrNotFound = errors.New("compliance record not found")

// Repository defines the interface for compliance record data access.
type Repository interface {
	Upsert(ctx context.Context, record *ComplianceRecord) error
	Get(ctx context.Context, shipID string, year int) (*ComplianceRecord, error)
	ListByYear(ctx context.Context, year int) ([]*ComplianceRecord, error)

	// RouteFigures returns the telemetry of the ship's routes for the
	// year, the authoritative input for recomputation.
	RouteFigures(ctx context.Context, shipID string, year int) ([]RouteFigures, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL compliance repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, record *ComplianceRecord) error {
	query := `
		INSERT INTO compliance_records (id, ship_id, year, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ship_id, year)
		DO UPDATE SET balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.ShipID, record.Year, record.Balance,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert compliance record: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, shipID string, year int) (*ComplianceRecord, error) {
	query := `
		SELECT id, ship_id, year, balance, created_at, updated_at
		FROM compliance_records
		WHERE ship_id = $1 AND year = $2
	`

	var record ComplianceRecord
	if err := r.db.GetContext(ctx, &record, query, shipID, year); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get compliance record: %w", err)
	}

	return &record, nil
}

func (r *PostgresRepository) ListByYear(ctx context.Context, year int) ([]*ComplianceRecord, error) {
	query := `
		SELECT id, ship_id, year, balance, created_at, updated_at
		FROM compliance_records
		WHERE year = $1
		ORDER BY ship_id
	`

	var records []*ComplianceRecord
	if err := r.db.SelectContext(ctx, &records, query, year); err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}

	return records, nil
}

func (r *PostgresRepository) RouteFigures(ctx context.Context, shipID string, year int) ([]RouteFigures, error) {
	query := `
		SELECT ghg_intensity, fuel_consumption
		FROM routes
		WHERE ship_id = $1 AND year = $2
	`

	var figures []RouteFigures
	if err := r.db.SelectContext(ctx, &figures, query, shipID, year); err != nil {
		return nil, fmt.Errorf("failed to load route figures: %w", err)
	}

	return figures, nil
}
