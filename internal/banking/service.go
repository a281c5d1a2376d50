package banking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInsufficientSurplus is returned when a ship tries to bank more
// than its unbanked compliance surplus.
var ErrInsufficientSurplus = errors.New("insufficient compliance surplus to bank")

// ErrInsufficientBanked is returned when a ship tries to apply more
// than its banked running total.
var ErrInsufficientBanked = errors.New("insufficient banked surplus to apply")

// BalanceSource reports a ship's stored compliance balance for a
// year. Satisfied by the compliance service.
type BalanceSource interface {
	BalanceFor(ctx context.Context, shipID string, year int) (float64, error)
}

// Service provides business logic for the surplus bank ledger.
type Service struct {
	repo     Repository
	balances BalanceSource
	logger   *zap.Logger
}

// NewService creates a new banking service.
func NewService(repo Repository, balances BalanceSource, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		balances: balances,
		logger:   logger,
	}
}

// Bank stores part of a ship's compliance surplus for later use by
// appending a positive ledger entry. Only surplus that has not been
// banked already may be stored.
func (s *Service) Bank(ctx context.Context, shipID string, year int, amount float64) (*BankEntry, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	balance, err := s.balances.BalanceFor(ctx, shipID, year)
	if err != nil {
		return nil, err
	}

	banked, err := s.repo.SumForShipYear(ctx, shipID, year)
	if err != nil {
		return nil, err
	}

	available := balance - banked
	if amount > available {
		return nil, fmt.Errorf("%w: requested %.2f, available %.2f", ErrInsufficientSurplus, amount, available)
	}

	entry := &BankEntry{
		ID:        uuid.New(),
		ShipID:    shipID,
		Year:      year,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Surplus banked",
		zap.String("ship_id", shipID),
		zap.Int("year", year),
		zap.Float64("amount", amount))

	return entry, nil
}

// Apply withdraws banked surplus to offset a deficit by appending a
// negative ledger entry. The withdrawal may not exceed the banked
// running total.
func (s *Service) Apply(ctx context.Context, shipID string, year int, amount float64) (*BankEntry, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	banked, err := s.repo.SumForShipYear(ctx, shipID, year)
	if err != nil {
		return nil, err
	}

	if amount > banked {
		return nil, fmt.Errorf("%w: requested %.2f, banked %.2f", ErrInsufficientBanked, amount, banked)
	}

	entry := &BankEntry{
		ID:        uuid.New(),
		ShipID:    shipID,
		Year:      year,
		Amount:    -amount,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Banked surplus applied",
		zap.String("ship_id", shipID),
		zap.Int("year", year),
		zap.Float64("amount", amount))

	return entry, nil
}

// Balance returns the banked running total for a (ship, year).
func (s *Service) Balance(ctx context.Context, shipID string, year int) (float64, error) {
	return s.repo.SumForShipYear(ctx, shipID, year)
}

// History lists a ship's ledger entries, most recent first.
func (s *Service) History(ctx context.Context, shipID string) ([]*BankEntry, error) {
	return s.repo.History(ctx, shipID)
}
