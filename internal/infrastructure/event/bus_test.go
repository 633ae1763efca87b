package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	types []string
	err   error
	panic bool

	mu   sync.Mutex
	seen []string
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	if h.panic {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, ev.EventType())
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) handled() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen...)
}

func newUnitEvents(t *testing.T) (shared.DomainEvent, shared.DomainEvent) {
	t.Helper()
	u, _, err := property.NewUnit(uuid.New(), uuid.New(), "12B", property.UnitStatusAvailable, uuid.New())
	require.NoError(t, err)
	u.ClearDomainEvents()

	_, err = u.ChangeStatus(property.UnitStatusOccupied, uuid.New(), "")
	require.NoError(t, err)
	u.MarkDeleted(uuid.New())

	evs := u.GetDomainEvents()
	require.Len(t, evs, 2)
	return evs[0], evs[1]
}

func TestInMemoryEventBus_RoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	changed, deleted := newUnitEvents(t)

	statusOnly := &recordingHandler{types: []string{property.EventTypeUnitStatusChanged}}
	everything := &recordingHandler{}
	bus.Subscribe(statusOnly)
	bus.Subscribe(everything)

	require.NoError(t, bus.Publish(context.Background(), changed, deleted))

	assert.Equal(t, []string{property.EventTypeUnitStatusChanged}, statusOnly.handled())
	assert.Equal(t, []string{property.EventTypeUnitStatusChanged, property.EventTypeUnitDeleted}, everything.handled())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	changed, deleted := newUnitEvents(t)

	h := &recordingHandler{types: []string{property.EventTypeUnitStatusChanged}}
	bus.Subscribe(h, property.EventTypeUnitDeleted)

	require.NoError(t, bus.Publish(context.Background(), changed, deleted))
	assert.Equal(t, []string{property.EventTypeUnitDeleted}, h.handled())
}

func TestInMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	changed, _ := newUnitEvents(t)

	failing := &recordingHandler{err: errors.New("sink unavailable")}
	panicking := &recordingHandler{panic: true}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), changed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink unavailable")
	assert.Contains(t, err.Error(), "handler panicked")

	assert.Len(t, healthy.handled(), 1)
	assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	changed, _ := newUnitEvents(t)

	h := &recordingHandler{}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), changed))
	assert.Empty(t, h.handled())
}

func TestInMemoryEventBus_StopRejectsPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	changed, _ := newUnitEvents(t)
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
	assert.ErrorIs(t, bus.Publish(ctx, changed), ErrBusStopped)

	require.NoError(t, bus.Start(ctx))
	assert.NoError(t, bus.Publish(ctx, changed))
}

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	a := &recordingHandler{}
	b := &recordingHandler{}

	r.Register(a, "UnitCreated", "UnitDeleted")
	r.Register(a, "UnitCreated")
	r.Register(b)

	assert.Equal(t, []shared.EventHandler{a, b}, r.HandlersFor("UnitCreated"))
	assert.Equal(t, []shared.EventHandler{b}, r.HandlersFor("UnitStatusChanged"))
	assert.Equal(t, 2, r.Len())

	r.Unregister(a)
	assert.Equal(t, []shared.EventHandler{b}, r.HandlersFor("UnitDeleted"))
	assert.Equal(t, 1, r.Len())
}
