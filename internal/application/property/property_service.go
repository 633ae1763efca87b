package property

import (
	"context"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyService handles property operations
type PropertyService struct {
	propertyRepo property.PropertyRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo property.PropertyRepository) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo}
}

// Create creates a new property
func (s *PropertyService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	p, err := property.NewProperty(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.propertyRepo.ExistsByCode(ctx, tenantID, p.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Property with this code already exists")
	}

	if req.AddressLine != "" || req.City != "" {
		p.SetAddress(req.AddressLine, req.City)
	}
	if actorID != uuid.Nil {
		p.SetCreatedBy(actorID)
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPropertyResponse(p)
	return &response, nil
}

// GetByID retrieves a property by ID
func (s *PropertyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPropertyResponse(p)
	return &response, nil
}

// List retrieves properties with pagination
func (s *PropertyService) List(ctx context.Context, tenantID uuid.UUID, filter PropertyListFilter) ([]PropertyResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultPageSize
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	}
	if filter.City != "" {
		domainFilter = domainFilter.Where("city", filter.City)
	}

	props, err := s.propertyRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]PropertyResponse, len(props))
	for i := range props {
		out[i] = ToPropertyResponse(&props[i])
	}
	return out, total, nil
}
