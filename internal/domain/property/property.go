package property

import (
	"strings"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Property is a building or estate that owns units
type Property struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	AddressLine string
	City        string
}

// NewProperty creates a new property
func NewProperty(tenantID uuid.UUID, code, name string) (*Property, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Property code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Property code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}

	return &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
	}, nil
}

// SetAddress sets the street address and city
func (p *Property) SetAddress(line, city string) {
	p.AddressLine = strings.TrimSpace(line)
	p.City = strings.TrimSpace(city)
	p.Touch()
}
