package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fueleu/fleet-portal/fleet-portal-backend/internal/compliance"
)

// Service provides business logic for route records.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new routes service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateRoute registers a new route record.
func (s *Service) CreateRoute(ctx context.Context, req *CreateRouteRequest) (*Route, error) {
	if req.GHGIntensity <= 0 {
		return nil, fmt.Errorf("ghg_intensity must be positive")
	}
	if req.FuelConsumption < 0 {
		return nil, fmt.Errorf("fuel_consumption must not be negative")
	}
	if req.Year < 2000 || req.Year > time.Now().Year()+1 {
		return nil, fmt.Errorf("invalid year: %d", req.Year)
	}

	now := time.Now()
	route := &Route{
		ID:              uuid.New(),
		ShipID:          req.ShipID,
		VesselType:      req.VesselType,
		FuelType:        req.FuelType,
		Year:            req.Year,
		GHGIntensity:    req.GHGIntensity,
		FuelConsumption: req.FuelConsumption,
		Distance:        req.Distance,
		TotalEmissions:  req.TotalEmissions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, route); err != nil {
		return nil, err
	}

	s.logger.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.String("ship_id", route.ShipID),
		zap.Int("year", route.Year))

	return route, nil
}

// GetRoute fetches a single route by ID.
func (s *Service) GetRoute(ctx context.Context, id uuid.UUID) (*Route, error) {
	return s.repo.Get(ctx, id)
}

// ListRoutes lists routes matching the filters.
func (s *Service) ListRoutes(ctx context.Context, filters *RouteFilters) ([]*Route, error) {
	return s.repo.List(ctx, filters)
}

// DeleteRoute removes a route record.
func (s *Service) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SetBaseline designates one route as the comparison baseline. The
// repository clears every other baseline flag in the same transaction.
func (s *Service) SetBaseline(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetBaseline(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Baseline route changed", zap.String("route_id", id.String()))
	return nil
}

// CompareToBaseline annotates every route with the percent difference
// of its GHG intensity against the baseline route's intensity.
func (s *Service) CompareToBaseline(ctx context.Context) ([]*RouteComparison, error) {
	baseline, err := s.repo.GetBaseline(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	comparisons := make([]*RouteComparison, 0, len(all))
	for _, route := range all {
		diff, err := compliance.PercentDiff(route.GHGIntensity, baseline.GHGIntensity)
		if err != nil {
			return nil, fmt.Errorf("baseline route %s: %w", baseline.ID, err)
		}
		comparisons = append(comparisons, &RouteComparison{
			Route:       *route,
			PercentDiff: diff,
		})
	}

	return comparisons, nil
}
