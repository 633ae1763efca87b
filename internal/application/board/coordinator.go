package board

import (
	"context"
	"sync"
	"time"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveState is the lifecycle of one optimistic status change
type MoveState string

const (
	MoveStateIdle       MoveState = "idle"
	MoveStateApplied    MoveState = "applied"
	MoveStateCommitted  MoveState = "committed"
	MoveStateRolledBack MoveState = "rolled_back"
)

// Coordinator errors
var (
	ErrMovePending     = shared.NewDomainError("MOVE_PENDING", "A status change for this unit is still pending")
	ErrUnknownUnit     = shared.NewDomainError(shared.ErrNotFound.Code, "Unit is not on the board")
	ErrPendingOnReload = shared.NewDomainError("MOVES_PENDING", "Cannot reload the board while changes are pending")
)

// StatusPersister performs the authoritative status change
type StatusPersister interface {
	PersistStatus(ctx context.Context, unitID uuid.UUID, to property.UnitStatus, note string) error
}

// NotificationKind classifies a user-visible notification
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is emitted once per resolved move that needs the user's attention
type Notification struct {
	Kind       NotificationKind
	UnitID     uuid.UUID
	UnitNumber string
	From       property.UnitStatus
	To         property.UnitStatus
	Err        error
}

// Notifier shows notifications to the user
type Notifier interface {
	Notify(n Notification)
}

// MoveResult reports how a move ended
type MoveResult struct {
	UnitID   uuid.UUID
	From     property.UnitStatus
	To       property.UnitStatus
	State    MoveState
	Err      error
	Duration time.Duration
}

type pendingMove struct {
	snapshot board.BoardUnit
	to       property.UnitStatus
}

// Coordinator owns the in-memory unit collection of a board and applies status
// moves optimistically. A move is visible immediately; if the persister fails
// the affected unit is restored from its snapshot and a single error
// notification is emitted. Other units are never touched by a rollback.
// A unit with a pending move cannot be moved again until that move resolves.
type Coordinator struct {
	mu      sync.Mutex
	units   []board.BoardUnit
	index   map[uuid.UUID]int
	pending map[uuid.UUID]*pendingMove

	persister     StatusPersister
	notifier      Notifier
	logger        *zap.Logger
	now           func() time.Time
	notifySuccess bool
}

// NewCoordinator creates a coordinator over units. The slice is copied.
func NewCoordinator(units []board.BoardUnit, persister StatusPersister, notifier Notifier) *Coordinator {
	c := &Coordinator{
		pending:   make(map[uuid.UUID]*pendingMove),
		persister: persister,
		notifier:  notifier,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	c.setUnits(units)
	return c
}

// WithLogger sets the logger
func (c *Coordinator) WithLogger(logger *zap.Logger) *Coordinator {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithClock overrides the time source used by filters and stats
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// WithSuccessNotifications also notifies on committed moves
func (c *Coordinator) WithSuccessNotifications(enabled bool) *Coordinator {
	c.notifySuccess = enabled
	return c
}

// Reload replaces the collection. It is refused while any move is pending.
func (c *Coordinator) Reload(units []board.BoardUnit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) > 0 {
		return ErrPendingOnReload
	}
	c.setUnits(units)
	return nil
}

func (c *Coordinator) setUnits(units []board.BoardUnit) {
	c.units = make([]board.BoardUnit, len(units))
	copy(c.units, units)
	c.index = make(map[uuid.UUID]int, len(units))
	for i, u := range c.units {
		c.index[u.ID] = i
	}
}

// Snapshot returns a copy of the current collection, including optimistic changes
func (c *Coordinator) Snapshot() []board.BoardUnit {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]board.BoardUnit, len(c.units))
	copy(out, c.units)
	return out
}

// Unit returns the current view of one unit
func (c *Coordinator) Unit(unitID uuid.UUID) (board.BoardUnit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[unitID]
	if !ok {
		return board.BoardUnit{}, false
	}
	return c.units[i], true
}

// Pending reports whether unitID has a move in flight
func (c *Coordinator) Pending(unitID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[unitID]
	return ok
}

// Columns groups the filtered collection by status
func (c *Coordinator) Columns(filter board.FilterState) []board.Column {
	return board.GroupByStatus(board.ApplyFilters(c.Snapshot(), filter, c.now()))
}

// Stats aggregates over the filtered collection
func (c *Coordinator) Stats(filter board.FilterState) board.Stats {
	now := c.now()
	return board.ComputeStats(board.ApplyFilters(c.Snapshot(), filter, now), now)
}

// Move applies a status change locally, persists it and reconciles the
// outcome. The returned error is set only when the move was refused before
// anything changed. Persistence failures are reported in MoveResult after the
// rollback.
func (c *Coordinator) Move(ctx context.Context, unitID uuid.UUID, to property.UnitStatus, note string) (*MoveResult, error) {
	if !to.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidStatus.Code, "Invalid unit status: "+string(to))
	}

	started := time.Now()
	snapshot, err := c.apply(unitID, to)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{UnitID: unitID, From: snapshot.Status, To: to, State: MoveStateApplied}
	persistErr := c.persister.PersistStatus(ctx, unitID, to, note)
	result.Duration = time.Since(started)

	if persistErr != nil {
		c.rollback(unitID)
		result.State = MoveStateRolledBack
		result.Err = persistErr
		c.logger.Warn("status move rolled back",
			zap.String("unit_id", unitID.String()),
			zap.String("from_status", snapshot.Status.String()),
			zap.String("to_status", to.String()),
			zap.Error(persistErr),
		)
		c.emit(Notification{
			Kind:       NotificationError,
			UnitID:     unitID,
			UnitNumber: snapshot.UnitNumber,
			From:       snapshot.Status,
			To:         to,
			Err:        persistErr,
		})
		return result, nil
	}

	c.commit(unitID)
	result.State = MoveStateCommitted
	if c.notifySuccess {
		c.emit(Notification{
			Kind:       NotificationSuccess,
			UnitID:     unitID,
			UnitNumber: snapshot.UnitNumber,
			From:       snapshot.Status,
			To:         to,
		})
	}
	return result, nil
}

func (c *Coordinator) apply(unitID uuid.UUID, to property.UnitStatus) (board.BoardUnit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[unitID]
	if !ok {
		return board.BoardUnit{}, ErrUnknownUnit
	}
	if _, busy := c.pending[unitID]; busy {
		return board.BoardUnit{}, ErrMovePending
	}

	snapshot := c.units[i]
	c.pending[unitID] = &pendingMove{snapshot: snapshot, to: to}
	c.units[i].Status = to
	return snapshot, nil
}

func (c *Coordinator) commit(unitID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[unitID]; ok {
		c.units[i].Version++
	}
	delete(c.pending, unitID)
}

func (c *Coordinator) rollback(unitID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[unitID]
	if !ok {
		return
	}
	if i, ok := c.index[unitID]; ok {
		c.units[i] = p.snapshot
	}
	delete(c.pending, unitID)
}

func (c *Coordinator) emit(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
