package pooling

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a pool does not exist.
var ErrNotFound = errors.New("pool not found")

// Repository defines the interface for pool data access.
type Repository interface {
	// Create persists the pool and all of its members in a single
	// transaction: all rows are written or none are.
	Create(ctx context.Context, pool *Pool) error
	Get(ctx context.Context, id uuid.UUID) (*Pool, error)
	List(ctx context.Context, year *int) ([]*Pool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL pool repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, pool *Pool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pools (id, year, created_at) VALUES ($1, $2, $3)`,
		pool.ID, pool.Year, pool.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	for _, member := range pool.Members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pool_members (id, pool_id, ship_id, cb_before, cb_after) VALUES ($1, $2, $3, $4, $5)`,
			member.ID, member.PoolID, member.ShipID, member.CBBefore, member.CBAfter,
		); err != nil {
			return fmt.Errorf("failed to create pool member %s: %w", member.ShipID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pool: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Pool, error) {
	var pool Pool
	if err := r.db.GetContext(ctx, &pool,
		`SELECT id, year, created_at FROM pools WHERE id = $1`, id,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	if err := r.loadMembers(ctx, &pool); err != nil {
		return nil, err
	}

	return &pool, nil
}

func (r *PostgresRepository) List(ctx context.Context, year *int) ([]*Pool, error) {
	query := `SELECT id, year, created_at FROM pools`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE year = $1`
		args = append(args, *year)
	}
	query += ` ORDER BY created_at DESC`

	var pools []*Pool
	if err := r.db.SelectContext(ctx, &pools, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	for _, pool := range pools {
		if err := r.loadMembers(ctx, pool); err != nil {
			return nil, err
		}
	}

	return pools, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pool_members WHERE pool_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete pool members: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM pools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pool: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pool deletion: %w", err)
	}

	return nil
}

func (r *PostgresRepository) loadMembers(ctx context.Context, pool *Pool) error {
	query := `
		SELECT id, pool_id, ship_id, cb_before, cb_after
		FROM pool_members
		WHERE pool_id = $1
		ORDER BY cb_before DESC, ship_id
	`

	if err := r.db.SelectContext(ctx, &pool.Members, query, pool.ID); err != nil {
		return fmt.Errorf("failed to load pool members: %w", err)
	}

	return nil
}
