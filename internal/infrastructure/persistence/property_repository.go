package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/estateflow/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPropertyRepository implements property.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *tenant.TenantDB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: tenant.NewTenantDB(db)}
}

// FindByIDForTenant finds a property by ID within a tenant
func (r *GormPropertyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.ForTenant(ctx, tenantID).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrPropertyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists properties for a tenant
func (r *GormPropertyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	var rows []models.PropertyModel
	query := r.applyFilter(r.db.ForTenant(ctx, tenantID).Model(&models.PropertyModel{}), filter)
	query = applyPaging(query, filter, PropertySortFields, "name")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]property.Property, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForTenant counts properties for a tenant
func (r *GormPropertyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.ForTenant(ctx, tenantID).Model(&models.PropertyModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a property code is taken within a tenant
func (r *GormPropertyRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.ForTenant(ctx, tenantID).Model(&models.PropertyModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return r.db.Session(ctx).Save(models.PropertyModelFromDomain(p)).Error
}

func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	if city, ok := filter.Criteria["city"].(string); ok && city != "" {
		query = query.Where("city = ?", city)
	}
	return query
}

var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
