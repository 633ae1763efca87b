package property

import (
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Property DTOs
// =============================================================================

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	AddressLine string `json:"address_line" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
}

// PropertyListFilter represents filter options for the property list
type PropertyListFilter struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToPropertyResponse converts a domain Property to PropertyResponse
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Code:        p.Code,
		Name:        p.Name,
		AddressLine: p.AddressLine,
		City:        p.City,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// =============================================================================
// Unit DTOs
// =============================================================================

// UnitAttributesDTO is the wire form of unit attributes
type UnitAttributesDTO struct {
	Floor     *int             `json:"floor,omitempty"`
	Bedrooms  *int             `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	Bathrooms *int             `json:"bathrooms,omitempty" binding:"omitempty,min=0"`
	SizeSqm   *decimal.Decimal `json:"size_sqm,omitempty"`
	Extra     map[string]any   `json:"extra,omitempty"`
}

func (a *UnitAttributesDTO) toDomain() property.UnitAttributes {
	if a == nil {
		return property.UnitAttributes{}
	}
	return property.UnitAttributes{
		Floor:     a.Floor,
		Bedrooms:  a.Bedrooms,
		Bathrooms: a.Bathrooms,
		SizeSqm:   a.SizeSqm,
		Extra:     a.Extra,
	}
}

// CreateUnitRequest represents a request to provision a unit
type CreateUnitRequest struct {
	PropertyID   uuid.UUID          `json:"property_id" binding:"required"`
	UnitNumber   string             `json:"unit_number" binding:"required,min=1,max=50"`
	Status       string             `json:"status" binding:"omitempty,unit_status"`
	RentAmount   *decimal.Decimal   `json:"rent_amount"`
	Attributes   *UnitAttributesDTO `json:"attributes"`
	OccupantID   *uuid.UUID         `json:"occupant_id"`
	OccupantName string             `json:"occupant_name" binding:"max=200"`
}

// UpdateUnitRequest changes descriptive fields. Status is not accepted here.
type UpdateUnitRequest struct {
	RentAmount    *decimal.Decimal   `json:"rent_amount"`
	ClearRent     bool               `json:"clear_rent"`
	Attributes    *UnitAttributesDTO `json:"attributes"`
	OccupantID    *uuid.UUID         `json:"occupant_id"`
	OccupantName  *string            `json:"occupant_name" binding:"omitempty,max=200"`
	ClearOccupant bool               `json:"clear_occupant"`
}

// TransitionStatusRequest is the body of the status change call
type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=1000"`
}

// UnitListFilter represents filter options for the unit list
type UnitListFilter struct {
	Search     string `form:"search"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,unit_status"`
	Page       int    `form:"page" binding:"min=0"`
	PageSize   int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string `form:"order_by" binding:"omitempty,oneof=unit_number status created_at updated_at"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID           uuid.UUID         `json:"id"`
	TenantID     uuid.UUID         `json:"tenant_id"`
	PropertyID   uuid.UUID         `json:"property_id"`
	UnitNumber   string            `json:"unit_number"`
	Status       string            `json:"status"`
	RentAmount   *decimal.Decimal  `json:"rent_amount,omitempty"`
	Attributes   UnitAttributesDTO `json:"attributes"`
	OccupantID   *uuid.UUID        `json:"occupant_id,omitempty"`
	OccupantName string            `json:"occupant_name,omitempty"`
	StatusSeq    int               `json:"status_seq"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Version      int               `json:"version"`
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *property.Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		TenantID:   u.TenantID,
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		Status:     u.Status.String(),
		RentAmount: u.RentAmount,
		Attributes: UnitAttributesDTO{
			Floor:     u.Attributes.Floor,
			Bedrooms:  u.Attributes.Bedrooms,
			Bathrooms: u.Attributes.Bathrooms,
			SizeSqm:   u.Attributes.SizeSqm,
			Extra:     u.Attributes.Extra,
		},
		OccupantID:   u.OccupantID,
		OccupantName: u.OccupantName,
		StatusSeq:    u.StatusSeq,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Version:      u.Version,
	}
}

// ToUnitResponses converts a slice of units
func ToUnitResponses(units []property.Unit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i := range units {
		out[i] = ToUnitResponse(&units[i])
	}
	return out
}

// =============================================================================
// History DTOs
// =============================================================================

// HistoryEntryResponse is one ledger entry in API responses
type HistoryEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	UnitID     uuid.UUID `json:"unit_id"`
	Sequence   int       `json:"sequence"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
	Note       string    `json:"note,omitempty"`
}

// ToHistoryEntryResponse converts a ledger entry
func ToHistoryEntryResponse(e *property.StatusHistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:         e.ID,
		UnitID:     e.UnitID,
		Sequence:   e.Sequence,
		FromStatus: e.FromStatus.String(),
		ToStatus:   e.ToStatus.String(),
		ChangedBy:  e.ChangedBy,
		ChangedAt:  e.ChangedAt,
		Note:       e.Note,
	}
}

// ToHistoryEntryResponses converts a slice of ledger entries, keeping order
func ToHistoryEntryResponses(entries []property.StatusHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToHistoryEntryResponse(&entries[i])
	}
	return out
}

// TransitionResponse is returned by a successful status change
type TransitionResponse struct {
	Unit  UnitResponse         `json:"unit"`
	Entry HistoryEntryResponse `json:"entry"`
}

// HistoryExportResponse is the full ledger of a unit for audit
type HistoryExportResponse struct {
	UnitID        uuid.UUID              `json:"unit_id"`
	UnitNumber    string                 `json:"unit_number"`
	CurrentStatus string                 `json:"current_status"`
	Entries       []HistoryEntryResponse `json:"entries"`
	ChainBreaks   []property.ChainBreak  `json:"chain_breaks"`
	Consistent    bool                   `json:"consistent"`
	Problem       string                 `json:"problem,omitempty"`
	ExportedAt    time.Time              `json:"exported_at"`
}
