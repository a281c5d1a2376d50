package routes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, route *Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Route), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filters *RouteFilters) ([]*Route, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*Route), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetBaseline(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetBaseline(ctx context.Context) (*Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Route), args.Error(1)
}

func (m *MockRepository) ShipYears(ctx context.Context) ([]ShipYear, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ShipYear), args.Error(1)
}

func TestCreateRoute(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(r *Route) bool {
		return r.ShipID == "IMO9074729" && r.ID != uuid.Nil && !r.IsBaseline
	})).Return(nil)

	route, err := service.CreateRoute(ctx, &CreateRouteRequest{
		ShipID:          "IMO9074729",
		VesselType:      "Container",
		FuelType:        "HFO",
		Year:            time.Now().Year(),
		GHGIntensity:    91.2,
		FuelConsumption: 5200,
	})
	require.NoError(t, err)
	assert.Equal(t, "IMO9074729", route.ShipID)
	mockRepo.AssertExpectations(t)
}

func TestCreateRouteRejectsBadTelemetry(t *testing.T) {
	service := NewService(new(MockRepository), zap.NewNop())
	ctx := context.Background()

	_, err := service.CreateRoute(ctx, &CreateRouteRequest{
		ShipID: "X", VesselType: "T", FuelType: "F", Year: 2025,
		GHGIntensity: 0, FuelConsumption: 100,
	})
	assert.ErrorContains(t, err, "ghg_intensity")

	_, err = service.CreateRoute(ctx, &CreateRouteRequest{
		ShipID: "X", VesselType: "T", FuelType: "F", Year: 2025,
		GHGIntensity: 90, FuelConsumption: -1,
	})
	assert.ErrorContains(t, err, "fuel_consumption")

	_, err = service.CreateRoute(ctx, &CreateRouteRequest{
		ShipID: "X", VesselType: "T", FuelType: "F", Year: 1990,
		GHGIntensity: 90, FuelConsumption: 100,
	})
	assert.ErrorContains(t, err, "year")
}

func TestSetBaselineDelegates(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	mockRepo.On("SetBaseline", ctx, id).Return(nil)

	require.NoError(t, service.SetBaseline(ctx, id))
	mockRepo.AssertExpectations(t)
}

func TestCompareToBaseline(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	baseline := &Route{ID: uuid.New(), ShipID: "IMO9074729", GHGIntensity: 91.0, IsBaseline: true}
	other := &Route{ID: uuid.New(), ShipID: "IMO9419802", GHGIntensity: 88.0}

	mockRepo.On("GetBaseline", ctx).Return(baseline, nil)
	mockRepo.On("List", ctx, (*RouteFilters)(nil)).Return([]*Route{baseline, other}, nil)

	comparisons, err := service.CompareToBaseline(ctx)
	require.NoError(t, err)
	require.Len(t, comparisons, 2)

	assert.InDelta(t, 0, comparisons[0].PercentDiff, 1e-9)
	assert.InDelta(t, -3.2967, comparisons[1].PercentDiff, 1e-4)
}

func TestCompareToBaselineWithoutBaseline(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("GetBaseline", ctx).Return(nil, ErrNoBaseline)

	_, err := service.CompareToBaseline(ctx)
	assert.ErrorIs(t, err, ErrNoBaseline)
}
