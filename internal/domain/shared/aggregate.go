package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh ID and UTC timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch moves UpdatedAt to now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// EventRecorder buffers events raised by an aggregate. The application layer
// drains it after the surrounding write commits.
type EventRecorder struct {
	pending []DomainEvent
}

// AddDomainEvent buffers e
func (r *EventRecorder) AddDomainEvent(e DomainEvent) {
	r.pending = append(r.pending, e)
}

// GetDomainEvents returns a copy of the buffered events in the order raised
func (r *EventRecorder) GetDomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}

// ClearDomainEvents empties the buffer
func (r *EventRecorder) ClearDomainEvents() {
	r.pending = nil
}

// TenantAggregateRoot is the envelope of every tenant-scoped aggregate.
// Version starts at 1 and is the optimistic concurrency token checked on write.
type TenantAggregateRoot struct {
	BaseEntity
	EventRecorder
	TenantID  uuid.UUID
	Version   int
	CreatedBy *uuid.UUID
}

// NewTenantAggregateRoot creates a root owned by tenantID
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
		Version:    1,
	}
}

// IncrementVersion bumps the concurrency token after a state change
func (t *TenantAggregateRoot) IncrementVersion() {
	t.Version++
}

// SetCreatedBy records the user that provisioned the aggregate
func (t *TenantAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// BelongsTo reports whether the aggregate is visible to tenantID
func (t *TenantAggregateRoot) BelongsTo(tenantID uuid.UUID) bool {
	return t.TenantID == tenantID
}
