package compliance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BankReader reports the banked running total for a (ship, year).
// Satisfied by the banking repository.
type BankReader interface {
	SumForShipYear(ctx context.Context, shipID string, year int) (float64, error)
}

// SummaryExporter writes a fleet summary to an output stream.
// Satisfied by the export package's Excel exporter.
type SummaryExporter interface {
	WriteFleetSummary(w io.Writer, year int, rows []ShipStatus) error
}

// Service provides business logic for compliance records.
type Service struct {
	repo     Repository
	bank     BankReader
	exporter SummaryExporter
	logger   *zap.Logger
}

// NewService creates a new compliance service.
func NewService(repo Repository, bank BankReader, exporter SummaryExporter, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		bank:     bank,
		exporter: exporter,
		logger:   logger,
	}
}

// Recompute derives the ship's compliance balance for the year from
// its stored route telemetry and upserts the record. The operation is
// idempotent: the balance is always fully re-derived, never adjusted.
func (s *Service) Recompute(ctx context.Context, shipID string, year int) (*ComplianceRecord, error) {
	figures, err := s.repo.RouteFigures(ctx, shipID, year)
	if err != nil {
		return nil, err
	}
	if len(figures) == 0 {
		return nil, fmt.Errorf("no routes recorded for ship %s in %d", shipID, year)
	}

	var balance float64
	for _, f := range figures {
		balance += Balance(f.GHGIntensity, f.FuelConsumption)
	}

	now := time.Now()
	record := &ComplianceRecord{
		ID:        uuid.New(),
		ShipID:    shipID,
		Year:      year,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Compliance record recomputed",
		zap.String("ship_id", shipID),
		zap.Int("year", year),
		zap.Float64("balance", balance))

	return record, nil
}

// Status returns the ship's compliance position for the year: stored
// balance, banked running total, and whether the fuel-weighted mean
// GHG intensity of its routes meets the target.
func (s *Service) Status(ctx context.Context, shipID string, year int) (*ShipStatus, error) {
	record, err := s.repo.Get(ctx, shipID, year)
	if err != nil {
		return nil, err
	}

	banked, err := s.bank.SumForShipYear(ctx, shipID, year)
	if err != nil {
		return nil, err
	}

	compliant := record.Balance >= 0
	if figures, err := s.repo.RouteFigures(ctx, shipID, year); err == nil {
		if intensity, ok := weightedIntensity(figures); ok {
			compliant = IsCompliant(intensity)
		}
	}

	return &ShipStatus{
		ShipID:    shipID,
		Year:      year,
		Balance:   record.Balance,
		Banked:    banked,
		Compliant: compliant,
	}, nil
}

// FleetSummary returns the compliance position of every ship with a
// record for the year.
func (s *Service) FleetSummary(ctx context.Context, year int) ([]ShipStatus, error) {
	records, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	summary := make([]ShipStatus, 0, len(records))
	for _, record := range records {
		banked, err := s.bank.SumForShipYear(ctx, record.ShipID, record.Year)
		if err != nil {
			return nil, err
		}
		summary = append(summary, ShipStatus{
			ShipID:    record.ShipID,
			Year:      record.Year,
			Balance:   record.Balance,
			Banked:    banked,
			Compliant: record.Balance >= 0,
		})
	}

	return summary, nil
}

// ExportFleetSummary streams the fleet summary for the year as an
// Excel workbook.
func (s *Service) ExportFleetSummary(ctx context.Context, w io.Writer, year int) error {
	if s.exporter == nil {
		return errors.New("summary export is not configured")
	}

	summary, err := s.FleetSummary(ctx, year)
	if err != nil {
		return err
	}

	return s.exporter.WriteFleetSummary(w, year, summary)
}

// BalanceFor returns the stored compliance balance for a (ship, year).
// Pool formation uses this as the authoritative cb_before source.
func (s *Service) BalanceFor(ctx context.Context, shipID string, year int) (float64, error) {
	record, err := s.repo.Get(ctx, shipID, year)
	if err != nil {
		return 0, err
	}
	return record.Balance, nil
}

// weightedIntensity returns the fuel-weighted mean GHG intensity of
// the routes, or false when no fuel was consumed.
func weightedIntensity(figures []RouteFigures) (float64, bool) {
	var totalFuel, weighted float64
	for _, f := range figures {
		totalFuel += f.FuelConsumption
		weighted += f.GHGIntensity * f.FuelConsumption
	}
	if totalFuel == 0 {
		return 0, false
	}
	return weighted / totalFuel, true
}
