package property

import (
	"context"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

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
	args := m.Called(ctx, unit, entry)
	return args.Error(0)
}

func (m *MockUnitRepository) SaveTransition(ctx context.Context, unit *property.Unit, entry *property.StatusHistoryEntry) error {
	args := m.Called(ctx, unit, entry)
	return args.Error(0)
}

func (m *MockUnitRepository) Update(ctx context.Context, unit *property.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry *property.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID, limit int) ([]property.StatusHistoryEntry, error) {
	args := m.Called(ctx, tenantID, unitID, limit)
	return args.Get(0).([]property.StatusHistoryEntry), args.Error(1)
}

func (m *MockStatusHistoryRepository) FindLatest(ctx context.Context, tenantID, unitID uuid.UUID) (*property.StatusHistoryEntry, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.StatusHistoryEntry), args.Error(1)
}

func (m *MockStatusHistoryRepository) CountByUnit(ctx context.Context, tenantID, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatusHistoryRepository) FindMismatches(ctx context.Context) ([]property.LedgerMismatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]property.LedgerMismatch), args.Error(1)
}

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
	args := m.Called(ctx, p)
	return args.Error(0)
}

// =============================================================================
// Mock Infrastructure
// =============================================================================

type MockLockStore struct {
	mock.Mock
}

func (m *MockLockStore) TryAcquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLockStore) Release(ctx context.Context, key, token string) error {
	args := m.Called(ctx, key, token)
	return args.Error(0)
}

func (m *MockLockStore) Close() error {
	return m.Called().Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockTransitionRecorder struct {
	mock.Mock
}

func (m *MockTransitionRecorder) RecordTransition(ctx context.Context, tenantID string, from, to property.UnitStatus) {
	m.Called(ctx, tenantID, from, to)
}
