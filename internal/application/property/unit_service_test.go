package property

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type unitServiceFixture struct {
	units     *MockUnitRepository
	history   *MockStatusHistoryRepository
	props     *MockPropertyRepository
	locks     *MockLockStore
	publisher *MockEventPublisher
	service   *UnitService
}

func newUnitServiceFixture() *unitServiceFixture {
	f := &unitServiceFixture{
		units:     new(MockUnitRepository),
		history:   new(MockStatusHistoryRepository),
		props:     new(MockPropertyRepository),
		locks:     new(MockLockStore),
		publisher: new(MockEventPublisher),
	}
	f.service = NewUnitService(f.units, f.history, f.props).
		WithLockStore(f.locks, 5*time.Second).
		WithEventPublisher(f.publisher)
	return f
}

func existingUnit(t *testing.T, tenantID uuid.UUID, status property.UnitStatus) *property.Unit {
	t.Helper()
	unit, _, err := property.NewUnit(tenantID, uuid.New(), "U1", status, uuid.New())
	require.NoError(t, err)
	unit.ClearDomainEvents()
	return unit
}

func TestUnitService_Transition(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userA := uuid.New()

	t.Run("available to occupied appends one matching entry", func(t *testing.T) {
		f := newUnitServiceFixture()
		unit := existingUnit(t, tenantID, property.UnitStatusAvailable)
		key := transitionLockKey(tenantID, unit.ID)

		var saved *property.StatusHistoryEntry
		f.locks.On("TryAcquire", ctx, key, 5*time.Second).Return("tok", true, nil).Once()
		f.locks.On("Release", mock.Anything, key, "tok").Return(nil).Once()
		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.units.On("SaveTransition", ctx, unit, mock.AnythingOfType("*property.StatusHistoryEntry")).
			Run(func(args mock.Arguments) { saved = args.Get(2).(*property.StatusHistoryEntry) }).
			Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == property.EventTypeUnitStatusChanged
		})).Return(nil).Once()

		resp, err := f.service.Transition(ctx, tenantID, unit.ID, userA, TransitionStatusRequest{Status: "occupied"})
		require.NoError(t, err)

		assert.Equal(t, "occupied", resp.Unit.Status)
		assert.Equal(t, property.UnitStatusOccupied, unit.Status)
		require.NotNil(t, saved)
		assert.Equal(t, unit.ID, saved.UnitID)
		assert.Equal(t, property.UnitStatusAvailable, saved.FromStatus)
		assert.Equal(t, property.UnitStatusOccupied, saved.ToStatus)
		assert.Equal(t, userA, saved.ChangedBy)
		assert.Equal(t, "available", resp.Entry.FromStatus)
		assert.Equal(t, "occupied", resp.Entry.ToStatus)
		assert.Empty(t, unit.GetDomainEvents())

		f.units.AssertNumberOfCalls(t, "SaveTransition", 1)
		f.locks.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("same status records a no-op entry", func(t *testing.T) {
		f := newUnitServiceFixture()
		unit := existingUnit(t, tenantID, property.UnitStatusMaintenance)

		f.locks.On("TryAcquire", ctx, mock.Anything, mock.Anything).Return("tok", true, nil)
		f.locks.On("Release", mock.Anything, mock.Anything, "tok").Return(nil)
		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.units.On("SaveTransition", ctx, unit, mock.MatchedBy(func(e *property.StatusHistoryEntry) bool {
			return e.FromStatus == property.UnitStatusMaintenance && e.ToStatus == property.UnitStatusMaintenance
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Transition(ctx, tenantID, unit.ID, userA, TransitionStatusRequest{Status: "maintenance"})
		require.NoError(t, err)
		assert.Equal(t, "maintenance", resp.Unit.Status)
		assert.Equal(t, resp.Entry.FromStatus, resp.Entry.ToStatus)
		f.units.AssertExpectations(t)
	})

	t.Run("invalid status is rejected before any lookup", func(t *testing.T) {
		f := newUnitServiceFixture()

		resp, err := f.service.Transition(ctx, tenantID, uuid.New(), userA, TransitionStatusRequest{Status: "haunted"})
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
		f.units.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
		f.locks.AssertNotCalled(t, "TryAcquire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unit outside tenant is not found", func(t *testing.T) {
		f := newUnitServiceFixture()
		unitID := uuid.New()

		f.locks.On("TryAcquire", ctx, mock.Anything, mock.Anything).Return("tok", true, nil)
		f.locks.On("Release", mock.Anything, mock.Anything, "tok").Return(nil).Once()
		f.units.On("FindByIDForTenant", ctx, tenantID, unitID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Transition(ctx, tenantID, unitID, userA, TransitionStatusRequest{Status: "sold"})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		f.units.AssertNotCalled(t, "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
		f.locks.AssertExpectations(t)
	})

	t.Run("overlapping change is rejected", func(t *testing.T) {
		f := newUnitServiceFixture()
		unitID := uuid.New()

		f.locks.On("TryAcquire", ctx, transitionLockKey(tenantID, unitID), mock.Anything).Return("", false, nil)

		_, err := f.service.Transition(ctx, tenantID, unitID, userA, TransitionStatusRequest{Status: "sold"})
		assert.True(t, errors.Is(err, shared.ErrTransitionInProgress))
		f.units.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
		f.locks.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed save publishes nothing", func(t *testing.T) {
		f := newUnitServiceFixture()
		unit := existingUnit(t, tenantID, property.UnitStatusAvailable)

		f.locks.On("TryAcquire", ctx, mock.Anything, mock.Anything).Return("tok", true, nil)
		f.locks.On("Release", mock.Anything, mock.Anything, "tok").Return(nil)
		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.units.On("SaveTransition", ctx, unit, mock.Anything).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.Transition(ctx, tenantID, unit.ID, userA, TransitionStatusRequest{Status: "reserved"})
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("works without lock store", func(t *testing.T) {
		units := new(MockUnitRepository)
		svc := NewUnitService(units, new(MockStatusHistoryRepository), new(MockPropertyRepository))
		unit := existingUnit(t, tenantID, property.UnitStatusReserved)

		units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		units.On("SaveTransition", ctx, unit, mock.Anything).Return(nil)

		resp, err := svc.Transition(ctx, tenantID, unit.ID, userA, TransitionStatusRequest{Status: "sold", Note: "closing done"})
		require.NoError(t, err)
		assert.Equal(t, "sold", resp.Unit.Status)
		assert.Equal(t, "closing done", resp.Entry.Note)
	})
}

func TestUnitService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()
	propertyID := uuid.New()
	prop := &property.Property{Name: "Harbor View"}

	t.Run("persists unit with creation entry", func(t *testing.T) {
		f := newUnitServiceFixture()
		rent := decimal.NewFromInt(1500)
		beds := 2

		f.props.On("FindByIDForTenant", ctx, tenantID, propertyID).Return(prop, nil)
		f.units.On("ExistsByNumber", ctx, tenantID, propertyID, "A-1").Return("", false, nil)
		f.units.On("CreateWithHistory", ctx, mock.AnythingOfType("*property.Unit"), mock.MatchedBy(func(e *property.StatusHistoryEntry) bool {
			return e.FromStatus == property.UnitStatusReserved && e.ToStatus == property.UnitStatusReserved && e.ChangedBy == actor
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		resp, err := f.service.Create(ctx, tenantID, actor, CreateUnitRequest{
			PropertyID: propertyID,
			UnitNumber: "A-1",
			Status:     "reserved",
			RentAmount: &rent,
			Attributes: &UnitAttributesDTO{Bedrooms: &beds},
		})
		require.NoError(t, err)
		assert.Equal(t, "reserved", resp.Status)
		assert.True(t, resp.RentAmount.Equal(rent))
		assert.Equal(t, 2, *resp.Attributes.Bedrooms)
		assert.Equal(t, 1, resp.StatusSeq)
		f.units.AssertExpectations(t)
	})

	t.Run("duplicate number", func(t *testing.T) {
		f := newUnitServiceFixture()
		f.props.On("FindByIDForTenant", ctx, tenantID, propertyID).Return(prop, nil)
		f.units.On("ExistsByNumber", ctx, tenantID, propertyID, "A-1").Return("tok", true, nil)

		_, err := f.service.Create(ctx, tenantID, actor, CreateUnitRequest{PropertyID: propertyID, UnitNumber: "A-1"})
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newUnitServiceFixture()
		f.props.On("FindByIDForTenant", ctx, tenantID, propertyID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, tenantID, actor, CreateUnitRequest{PropertyID: propertyID, UnitNumber: "A-1"})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestUnitService_History(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("clamps limit", func(t *testing.T) {
		f := newUnitServiceFixture()
		f.service.WithHistoryLimits(10, 50)
		unit := existingUnit(t, tenantID, property.UnitStatusAvailable)

		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.history.On("FindByUnit", ctx, tenantID, unit.ID, 50).Return([]property.StatusHistoryEntry{}, nil).Once()
		f.history.On("FindByUnit", ctx, tenantID, unit.ID, 10).Return([]property.StatusHistoryEntry{}, nil).Once()

		_, err := f.service.History(ctx, tenantID, unit.ID, 500)
		require.NoError(t, err)
		_, err = f.service.History(ctx, tenantID, unit.ID, 0)
		require.NoError(t, err)
		f.history.AssertExpectations(t)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newUnitServiceFixture()
		unitID := uuid.New()
		f.units.On("FindByIDForTenant", ctx, tenantID, unitID).Return(nil, shared.ErrNotFound)

		_, err := f.service.History(ctx, tenantID, unitID, 5)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestUnitService_ExportHistory(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	unit, created, err := property.NewUnit(tenantID, uuid.New(), "E-9", property.UnitStatusAvailable, uuid.New())
	require.NoError(t, err)
	moved, err := unit.ChangeStatus(property.UnitStatusOccupied, uuid.New(), "")
	require.NoError(t, err)

	t.Run("consistent ledger in chronological order", func(t *testing.T) {
		f := newUnitServiceFixture()
		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.history.On("FindByUnit", ctx, tenantID, unit.ID, 0).
			Return([]property.StatusHistoryEntry{*moved, *created}, nil)

		resp, err := f.service.ExportHistory(ctx, tenantID, unit.ID)
		require.NoError(t, err)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, 1, resp.Entries[0].Sequence)
		assert.Equal(t, 2, resp.Entries[1].Sequence)
		assert.True(t, resp.Consistent)
		assert.Empty(t, resp.ChainBreaks)
	})

	t.Run("reports head mismatch", func(t *testing.T) {
		f := newUnitServiceFixture()
		f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
		f.history.On("FindByUnit", ctx, tenantID, unit.ID, 0).
			Return([]property.StatusHistoryEntry{*created}, nil)

		resp, err := f.service.ExportHistory(ctx, tenantID, unit.ID)
		require.NoError(t, err)
		assert.False(t, resp.Consistent)
		assert.NotEmpty(t, resp.Problem)
	})
}

func TestUnitService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newUnitServiceFixture()
	unit := existingUnit(t, tenantID, property.UnitStatusOccupied)
	occupant := uuid.New()
	name := "Kim Park"

	f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
	f.units.On("Update", ctx, unit).Return(nil)

	resp, err := f.service.Update(ctx, tenantID, unit.ID, UpdateUnitRequest{OccupantID: &occupant, OccupantName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Kim Park", resp.OccupantName)
	assert.Equal(t, "occupied", resp.Status)
	assert.Equal(t, 1, resp.StatusSeq)
	f.units.AssertNotCalled(t, "SaveTransition", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnitService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newUnitServiceFixture()
	unit := existingUnit(t, tenantID, property.UnitStatusBlocked)

	f.units.On("FindByIDForTenant", ctx, tenantID, unit.ID).Return(unit, nil)
	f.units.On("DeleteForTenant", ctx, tenantID, unit.ID).Return(nil)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == property.EventTypeUnitDeleted
	})).Return(nil).Once()

	require.NoError(t, f.service.Delete(ctx, tenantID, unit.ID, uuid.New()))
	f.publisher.AssertExpectations(t)
}
