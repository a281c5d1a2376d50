package banking

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the interface for bank ledger data access.
// Entries are append-only; history is never mutated.
type Repository interface {
	Append(ctx context.Context, entry *BankEntry) error
	SumForShipYear(ctx context.Context, shipID string, year int) (float64, error)
	History(ctx context.Context, shipID string) ([]*BankEntry, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL bank repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, entry *BankEntry) error {
	query := `
		INSERT INTO bank_entries (id, ship_id, year, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ShipID, entry.Year, entry.Amount, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append bank entry: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SumForShipYear(ctx context.Context, shipID string, year int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM bank_entries
		WHERE ship_id = $1 AND year = $2
	`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, shipID, year); err != nil {
		return 0, fmt.Errorf("failed to sum bank entries: %w", err)
	}

	return total, nil
}

func (r *PostgresRepository) History(ctx context.Context, shipID string) ([]*BankEntry, error) {
	query := `
		SELECT id, ship_id, year, amount, created_at
		FROM bank_entries
		WHERE ship_id = $1
		ORDER BY created_at DESC
	`

	var entries []*BankEntry
	if err := r.db.SelectContext(ctx, &entries, query, shipID); err != nil {
		return nil, fmt.Errorf("failed to list bank entries: %w", err)
	}

	return entries, nil
}
