package property

import (
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for Unit
const (
	EventTypeUnitCreated       = "UnitCreated"
	EventTypeUnitStatusChanged = "UnitStatusChanged"
	EventTypeUnitDeleted       = "UnitDeleted"
)

// UnitCreatedEvent is published when a unit is provisioned
type UnitCreatedEvent struct {
	shared.EventHeader
	UnitID     uuid.UUID  `json:"unit_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	UnitNumber string     `json:"unit_number"`
	Status     UnitStatus `json:"status"`
}

// NewUnitCreatedEvent creates a new UnitCreatedEvent
func NewUnitCreatedEvent(u *Unit) *UnitCreatedEvent {
	return &UnitCreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeUnitCreated, u.ID, u.TenantID),
		UnitID:      u.ID,
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		Status:      u.Status,
	}
}

// UnitStatusChangedEvent is published after a status change commits
type UnitStatusChangedEvent struct {
	shared.EventHeader
	UnitID     uuid.UUID  `json:"unit_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	UnitNumber string     `json:"unit_number"`
	FromStatus UnitStatus `json:"from_status"`
	ToStatus   UnitStatus `json:"to_status"`
	ChangedBy  uuid.UUID  `json:"changed_by"`
	Sequence   int        `json:"sequence"`
	Note       string     `json:"note,omitempty"`
}

// NewUnitStatusChangedEvent creates a new UnitStatusChangedEvent
func NewUnitStatusChangedEvent(u *Unit, entry *StatusHistoryEntry) *UnitStatusChangedEvent {
	return &UnitStatusChangedEvent{
		EventHeader: shared.NewEventHeader(EventTypeUnitStatusChanged, u.ID, u.TenantID),
		UnitID:      u.ID,
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		FromStatus:  entry.FromStatus,
		ToStatus:    entry.ToStatus,
		ChangedBy:   entry.ChangedBy,
		Sequence:    entry.Sequence,
		Note:        entry.Note,
	}
}

// UnitDeletedEvent is published when a unit is removed administratively
type UnitDeletedEvent struct {
	shared.EventHeader
	UnitID     uuid.UUID  `json:"unit_id"`
	UnitNumber string     `json:"unit_number"`
	LastStatus UnitStatus `json:"last_status"`
	DeletedBy  uuid.UUID  `json:"deleted_by"`
}

// NewUnitDeletedEvent creates a new UnitDeletedEvent
func NewUnitDeletedEvent(u *Unit, actorID uuid.UUID) *UnitDeletedEvent {
	return &UnitDeletedEvent{
		EventHeader: shared.NewEventHeader(EventTypeUnitDeleted, u.ID, u.TenantID),
		UnitID:      u.ID,
		UnitNumber:  u.UnitNumber,
		LastStatus:  u.Status,
		DeletedBy:   actorID,
	}
}
