package models

import (
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate
type PropertyModel struct {
	TenantAggregateModel
	Code        string `gorm:"type:varchar(50);not null;index"`
	Name        string `gorm:"type:varchar(200);not null"`
	AddressLine string `gorm:"type:varchar(500)"`
	City        string `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		AddressLine:         m.AddressLine,
		City:                m.City,
	}
}

// PropertyModelFromDomain creates a model from a domain Property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{
		Code:        p.Code,
		Name:        p.Name,
		AddressLine: p.AddressLine,
		City:        p.City,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// UnitAttributesJSON is the stored form of unit attributes
type UnitAttributesJSON struct {
	Floor     *int             `json:"floor,omitempty"`
	Bedrooms  *int             `json:"bedrooms,omitempty"`
	Bathrooms *int             `json:"bathrooms,omitempty"`
	SizeSqm   *decimal.Decimal `json:"size_sqm,omitempty"`
	Extra     map[string]any   `json:"extra,omitempty"`
}

// UnitModel is the persistence model for the Unit aggregate
type UnitModel struct {
	TenantAggregateModel
	PropertyID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_units_property_number,priority:1"`
	UnitNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_property_number,priority:2"`
	Status       string             `gorm:"type:varchar(20);not null;index"`
	StatusSeq    int                `gorm:"not null;default:1"`
	RentAmount   *decimal.Decimal   `gorm:"type:decimal(18,2)"`
	Attributes   UnitAttributesJSON `gorm:"type:jsonb;serializer:json"`
	OccupantID   *uuid.UUID         `gorm:"type:uuid"`
	OccupantName string             `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the model to a domain Unit
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		PropertyID:          m.PropertyID,
		UnitNumber:          m.UnitNumber,
		Status:              property.UnitStatus(m.Status),
		RentAmount:          m.RentAmount,
		Attributes: property.UnitAttributes{
			Floor:     m.Attributes.Floor,
			Bedrooms:  m.Attributes.Bedrooms,
			Bathrooms: m.Attributes.Bathrooms,
			SizeSqm:   m.Attributes.SizeSqm,
			Extra:     m.Attributes.Extra,
		},
		OccupantID:   m.OccupantID,
		OccupantName: m.OccupantName,
		StatusSeq:    m.StatusSeq,
	}
}

// UnitModelFromDomain creates a model from a domain Unit
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		Status:     u.Status.String(),
		StatusSeq:  u.StatusSeq,
		RentAmount: u.RentAmount,
		Attributes: UnitAttributesJSON{
			Floor:     u.Attributes.Floor,
			Bedrooms:  u.Attributes.Bedrooms,
			Bathrooms: u.Attributes.Bathrooms,
			SizeSqm:   u.Attributes.SizeSqm,
			Extra:     u.Attributes.Extra,
		},
		OccupantID:   u.OccupantID,
		OccupantName: u.OccupantName,
	}
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	return m
}
