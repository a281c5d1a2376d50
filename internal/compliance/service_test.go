package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, record *ComplianceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, shipID string, year int) (*ComplianceRecord, error) {
	args := m.Called(ctx, shipID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ComplianceRecord), args.Error(1)
}

func (m *MockRepository) ListByYear(ctx context.Context, year int) ([]*ComplianceRecord, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]*ComplianceRecord), args.Error(1)
}

func (m *MockRepository) RouteFigures(ctx context.Context, shipID string, year int) ([]RouteFigures, error) {
	args := m.Called(ctx, shipID, year)
	return args.Get(0).([]RouteFigures), args.Error(1)
}

// MockBank is a mock implementation of the BankReader interface
type MockBank struct {
	mock.Mock
}

func (m *MockBank) SumForShipYear(ctx context.Context, shipID string, year int) (float64, error) {
	args := m.Called(ctx, shipID, year)
	return args.Get(0).(float64), args.Error(1)
}

func TestRecomputeSumsRouteBalances(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockBank), nil, zap.NewNop())

	ctx := context.Background()
	figures := []RouteFigures{
		{GHGIntensity: 91.0, FuelConsumption: 5000},
		{GHGIntensity: 85.0, FuelConsumption: 1000},
	}
	expected := Balance(91.0, 5000) + Balance(85.0, 1000)

	mockRepo.On("RouteFigures", ctx, "IMO9074729", 2025).Return(figures, nil)
	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(rec *ComplianceRecord) bool {
		return rec.ShipID == "IMO9074729" && rec.Year == 2025 && rec.Balance == expected
	})).Return(nil)

	record, err := service.Recompute(ctx, "IMO9074729", 2025)
	require.NoError(t, err)
	assert.InDelta(t, expected, record.Balance, 1e-6)
	mockRepo.AssertExpectations(t)
}

func TestRecomputeNoRoutes(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockBank), nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("RouteFigures", ctx, "IMO0000000", 2025).Return([]RouteFigures{}, nil)

	_, err := service.Recompute(ctx, "IMO0000000", 2025)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestStatusIncludesBankedTotal(t *testing.T) {
	mockRepo := new(MockRepository)
	mockBank := new(MockBank)
	service := NewService(mockRepo, mockBank, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Get", ctx, "IMO9321483", 2025).Return(&ComplianceRecord{
		ShipID:  "IMO9321483",
		Year:    2025,
		Balance: 1500000,
	}, nil)
	mockBank.On("SumForShipYear", ctx, "IMO9321483", 2025).Return(400000.0, nil)
	mockRepo.On("RouteFigures", ctx, "IMO9321483", 2025).Return([]RouteFigures{
		{GHGIntensity: 85.0, FuelConsumption: 2000},
	}, nil)

	status, err := service.Status(ctx, "IMO9321483", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, status.Balance)
	assert.Equal(t, 400000.0, status.Banked)
	assert.True(t, status.Compliant)
}

func TestStatusNonCompliantIntensity(t *testing.T) {
	mockRepo := new(MockRepository)
	mockBank := new(MockBank)
	service := NewService(mockRepo, mockBank, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Get", ctx, "IMO9074729", 2025).Return(&ComplianceRecord{
		ShipID:  "IMO9074729",
		Year:    2025,
		Balance: -340962000,
	}, nil)
	mockBank.On("SumForShipYear", ctx, "IMO9074729", 2025).Return(0.0, nil)
	mockRepo.On("RouteFigures", ctx, "IMO9074729", 2025).Return([]RouteFigures{
		{GHGIntensity: 91.0, FuelConsumption: 5000},
	}, nil)

	status, err := service.Status(ctx, "IMO9074729", 2025)
	require.NoError(t, err)
	assert.False(t, status.Compliant)
}

func TestStatusRecordMissing(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockBank), nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Get", ctx, "IMO9999999", 2025).Return(nil, ErrNotFound)

	_, err := service.Status(ctx, "IMO9999999", 2025)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFleetSummary(t *testing.T) {
	mockRepo := new(MockRepository)
	mockBank := new(MockBank)
	service := NewService(mockRepo, mockBank, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("ListByYear", ctx, 2025).Return([]*ComplianceRecord{
		{ShipID: "IMO9074729", Year: 2025, Balance: -200},
		{ShipID: "IMO9419802", Year: 2025, Balance: 900},
	}, nil)
	mockBank.On("SumForShipYear", ctx, "IMO9074729", 2025).Return(0.0, nil)
	mockBank.On("SumForShipYear", ctx, "IMO9419802", 2025).Return(150.0, nil)

	summary, err := service.FleetSummary(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.False(t, summary[0].Compliant)
	assert.True(t, summary[1].Compliant)
	assert.Equal(t, 150.0, summary[1].Banked)
}

func TestBalanceFor(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockBank), nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Get", ctx, "IMO9511155", 2025).Return(&ComplianceRecord{Balance: 123.45}, nil)

	balance, err := service.BalanceFor(ctx, "IMO9511155", 2025)
	require.NoError(t, err)
	assert.Equal(t, 123.45, balance)

	mockRepo.On("Get", ctx, "IMO0000000", 2025).Return(nil, errors.New("boom"))
	_, err = service.BalanceFor(ctx, "IMO0000000", 2025)
	assert.Error(t, err)
}
