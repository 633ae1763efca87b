package property

import (
	"strings"
	"time"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitAttributes holds the descriptive fields of a unit. Known fields are
// typed; Extra keeps values that have no stable schema yet.
type UnitAttributes struct {
	Floor     *int             `json:"floor,omitempty"`
	Bedrooms  *int             `json:"bedrooms,omitempty"`
	Bathrooms *int             `json:"bathrooms,omitempty"`
	SizeSqm   *decimal.Decimal `json:"size_sqm,omitempty"`
	Extra     map[string]any   `json:"extra,omitempty"`
}

// Validate rejects negative counts and sizes
func (a UnitAttributes) Validate() error {
	for _, v := range []*int{a.Bedrooms, a.Bathrooms} {
		if v != nil && *v < 0 {
			return shared.NewDomainError("INVALID_ATTRIBUTES", "Room counts cannot be negative")
		}
	}
	if a.SizeSqm != nil && a.SizeSqm.IsNegative() {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Size cannot be negative")
	}
	return nil
}

// Unit is a rentable or sellable space inside a property.
// Status is only ever changed through ChangeStatus.
type Unit struct {
	shared.TenantAggregateRoot
	PropertyID   uuid.UUID
	UnitNumber   string
	Status       UnitStatus
	RentAmount   *decimal.Decimal
	Attributes   UnitAttributes
	OccupantID   *uuid.UUID
	OccupantName string
	// StatusSeq is the sequence number of the latest ledger entry
	StatusSeq int
}

// NewUnit provisions a unit and returns the ledger entry that records its
// creation. That entry has FromStatus equal to ToStatus.
func NewUnit(tenantID, propertyID uuid.UUID, unitNumber string, initial UnitStatus, createdBy uuid.UUID) (*Unit, *StatusHistoryEntry, error) {
	unitNumber = strings.TrimSpace(unitNumber)
	if propertyID == uuid.Nil {
		return nil, nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if unitNumber == "" {
		return nil, nil, shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
	}
	if len(unitNumber) > 50 {
		return nil, nil, shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot exceed 50 characters")
	}
	if initial == "" {
		initial = UnitStatusAvailable
	}
	if !initial.IsValid() {
		return nil, nil, invalidStatusError(string(initial))
	}

	unit := &Unit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PropertyID:          propertyID,
		UnitNumber:          unitNumber,
		Status:              initial,
		StatusSeq:           1,
	}
	if createdBy != uuid.Nil {
		unit.SetCreatedBy(createdBy)
	}

	entry := newStatusHistoryEntry(unit, initial, initial, createdBy, "unit created", unit.CreatedAt)
	unit.AddDomainEvent(NewUnitCreatedEvent(unit))

	return unit, entry, nil
}

// ChangeStatus moves the unit to target on behalf of actorID and returns the
// ledger entry for the move. The previous status is captured before mutation.
// Moving to the current status is allowed and still produces an entry.
func (u *Unit) ChangeStatus(target UnitStatus, actorID uuid.UUID, note string) (*StatusHistoryEntry, error) {
	if !target.IsValid() {
		return nil, invalidStatusError(string(target))
	}
	if !u.Status.CanTransitionTo(target) {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Cannot move unit from "+u.Status.String()+" to "+target.String())
	}

	from := u.Status
	now := time.Now()

	u.Status = target
	u.StatusSeq++
	u.UpdatedAt = now
	u.IncrementVersion()

	entry := newStatusHistoryEntry(u, from, target, actorID, note, now)
	u.AddDomainEvent(NewUnitStatusChangedEvent(u, entry))

	return entry, nil
}

// SetRentAmount sets or clears the asking rent
func (u *Unit) SetRentAmount(amount *decimal.Decimal) error {
	if amount != nil && amount.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Rent amount cannot be negative")
	}
	u.RentAmount = amount
	u.Touch()
	return nil
}

// SetAttributes replaces the descriptive attributes
func (u *Unit) SetAttributes(attrs UnitAttributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	u.Attributes = attrs
	u.Touch()
	return nil
}

// AssignOccupant links the current tenant or buyer of the unit
func (u *Unit) AssignOccupant(occupantID uuid.UUID, name string) error {
	if occupantID == uuid.Nil {
		return shared.NewDomainError("INVALID_OCCUPANT", "Occupant ID cannot be empty")
	}
	u.OccupantID = &occupantID
	u.OccupantName = strings.TrimSpace(name)
	u.Touch()
	return nil
}

// ClearOccupant removes the occupant link
func (u *Unit) ClearOccupant() {
	u.OccupantID = nil
	u.OccupantName = ""
	u.Touch()
}

// HasOccupant reports whether an occupant is linked
func (u *Unit) HasOccupant() bool {
	return u.OccupantID != nil
}

// MarkDeleted records the administrative removal of the unit
func (u *Unit) MarkDeleted(actorID uuid.UUID) {
	u.AddDomainEvent(NewUnitDeletedEvent(u, actorID))
}
