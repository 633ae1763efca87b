package handler

import (
	"context"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) ExistsByNumber(ctx context.Context, tenantID, propertyID uuid.UUID, unitNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, propertyID, unitNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) CreateWithHistory(ctx context.Context, unit *property.Unit, entry *property.StatusHistoryEntry) error {
	return m.Called(ctx, unit, entry).Error(0)
}

func (m *MockUnitRepository) SaveTransition(ctx context.Context, unit *property.Unit, entry *property.StatusHistoryEntry) error {
	return m.Called(ctx, unit, entry).Error(0)
}

func (m *MockUnitRepository) Update(ctx context.Context, unit *property.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *property.StatusHistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID, limit int) ([]property.StatusHistoryEntry, error) {
	args := m.Called(ctx, tenantID, unitID, limit)
	return args.Get(0).([]property.StatusHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) FindLatest(ctx context.Context, tenantID, unitID uuid.UUID) (*property.StatusHistoryEntry, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.StatusHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) CountByUnit(ctx context.Context, tenantID, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) FindMismatches(ctx context.Context) ([]property.LedgerMismatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]property.LedgerMismatch), args.Error(1)
}

type MockBoardReader struct {
	mock.Mock
}

func (m *MockBoardReader) ListBoardUnits(ctx context.Context, tenantID uuid.UUID, q board.ReadQuery) ([]board.BoardUnit, int64, error) {
	args := m.Called(ctx, tenantID, q)
	return args.Get(0).([]board.BoardUnit), args.Get(1).(int64), args.Error(2)
}
