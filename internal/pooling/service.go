package pooling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BalanceSource reports a ship's stored compliance balance for a
// year. Satisfied by the compliance service; pool formation never
// trusts client-submitted balances.
type BalanceSource interface {
	BalanceFor(ctx context.Context, shipID string, year int) (float64, error)
}

// ValidationError carries the invariant violations of a rejected
// pool. It is expected caller-facing data, not an internal fault.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pool validation failed: %d rule violation(s)", len(e.Violations))
}

// Service provides business logic for compliance pools.
type Service struct {
	repo     Repository
	balances BalanceSource
	logger   *zap.Logger
}

// NewService creates a new pooling service.
func NewService(repo Repository, balances BalanceSource, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		balances: balances,
		logger:   logger,
	}
}

// CreatePool forms a pool for the given year and ships. Each member's
// cb_before is re-derived from the stored compliance record, the
// allocation is run, and the regulatory invariants are checked; an
// invalid pool is rejected with a *ValidationError carrying the
// violation strings. Valid pools are persisted atomically.
func (s *Service) CreatePool(ctx context.Context, req *CreatePoolRequest) (*Pool, error) {
	if len(req.ShipIDs) < 2 {
		return nil, fmt.Errorf("a pool requires at least two ships")
	}

	seen := make(map[string]bool, len(req.ShipIDs))
	members := make([]Member, 0, len(req.ShipIDs))
	for _, shipID := range req.ShipIDs {
		if seen[shipID] {
			return nil, fmt.Errorf("duplicate ship in pool: %s", shipID)
		}
		seen[shipID] = true

		balance, err := s.balances.BalanceFor(ctx, shipID, req.Year)
		if err != nil {
			return nil, fmt.Errorf("ship %s: %w", shipID, err)
		}
		members = append(members, Member{ShipID: shipID, CBBefore: balance})
	}

	allocated := Allocate(members)

	if result := Validate(allocated); !result.Valid {
		return nil, &ValidationError{Violations: result.Errors}
	}

	pool := &Pool{
		ID:        uuid.New(),
		Year:      req.Year,
		CreatedAt: time.Now(),
	}
	for _, m := range allocated {
		pool.Members = append(pool.Members, PoolMember{
			ID:       uuid.New(),
			PoolID:   pool.ID,
			ShipID:   m.ShipID,
			CBBefore: m.CBBefore,
			CBAfter:  m.CBAfter,
		})
	}

	if err := s.repo.Create(ctx, pool); err != nil {
		return nil, err
	}

	s.logger.Info("Pool created",
		zap.String("pool_id", pool.ID.String()),
		zap.Int("year", pool.Year),
		zap.Int("members", len(pool.Members)))

	return pool, nil
}

// GetPool fetches a pool with its members.
func (s *Service) GetPool(ctx context.Context, id uuid.UUID) (*Pool, error) {
	return s.repo.Get(ctx, id)
}

// ListPools lists pools, optionally filtered by year.
func (s *Service) ListPools(ctx context.Context, year *int) ([]*Pool, error) {
	return s.repo.List(ctx, year)
}

// DeletePool removes a pool and all of its members.
func (s *Service) DeletePool(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Pool deleted", zap.String("pool_id", id.String()))
	return nil
}
