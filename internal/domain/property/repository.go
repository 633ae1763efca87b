package property

import (
	"context"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyRepository defines persistence for properties
type PropertyRepository interface {
	// FindByIDForTenant finds a property by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)

	// FindAllForTenant lists properties for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Property, error)

	// CountForTenant counts properties for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a property code is taken within a tenant
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error
}

// UnitRepository defines persistence for units. Status never changes through
// Update; the only writes that touch status also append to the ledger.
type UnitRepository interface {
	// FindByIDForTenant finds a unit by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)

	// FindAllForTenant lists units. Supported filter keys: property_id, status.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Unit, error)

	// CountForTenant counts units matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if a unit number is taken within a property
	ExistsByNumber(ctx context.Context, tenantID, propertyID uuid.UUID, unitNumber string) (bool, error)

	// CreateWithHistory inserts a new unit and its creation ledger entry in one transaction
	CreateWithHistory(ctx context.Context, unit *Unit, entry *StatusHistoryEntry) error

	// SaveTransition writes the unit's new status and appends entry in one
	// transaction. It fails with a concurrency conflict when the stored version
	// is not the one the unit was loaded at.
	SaveTransition(ctx context.Context, unit *Unit, entry *StatusHistoryEntry) error

	// Update writes descriptive fields (rent, attributes, occupant) and bumps
	// the version. It never writes status. A stale version is a concurrency conflict.
	Update(ctx context.Context, unit *Unit) error

	// DeleteForTenant physically removes a unit and its ledger
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LedgerMismatch is a unit whose current status disagrees with the head of its ledger
type LedgerMismatch struct {
	TenantID       uuid.UUID
	UnitID         uuid.UUID
	UnitNumber     string
	UnitStatus     UnitStatus
	UnitSeq        int
	LedgerStatus   UnitStatus
	LedgerSequence int
}

// StatusHistoryRepository is the append-only unit status ledger
type StatusHistoryRepository interface {
	// Append records one entry. Existing entries are never updated or deleted.
	Append(ctx context.Context, entry *StatusHistoryEntry) error

	// FindByUnit returns entries for a unit, most recent first.
	// A limit of zero or less returns every entry.
	FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID, limit int) ([]StatusHistoryEntry, error)

	// FindLatest returns the head of a unit's ledger
	FindLatest(ctx context.Context, tenantID, unitID uuid.UUID) (*StatusHistoryEntry, error)

	// CountByUnit counts entries for a unit
	CountByUnit(ctx context.Context, tenantID, unitID uuid.UUID) (int64, error)

	// FindMismatches scans every unit across tenants and returns those whose
	// status or sequence differs from their latest entry, or that have none.
	FindMismatches(ctx context.Context) ([]LedgerMismatch, error)
}
