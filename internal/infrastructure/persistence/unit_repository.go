package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/estateflow/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements property.UnitRepository using GORM
type GormUnitRepository struct {
	db *tenant.TenantDB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: tenant.NewTenantDB(db)}
}

// FindByIDForTenant finds a unit by ID within a tenant
func (r *GormUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.ForTenant(ctx, tenantID).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrUnitNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists units for a tenant
func (r *GormUnitRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	var rows []models.UnitModel
	query := r.applyFilter(r.db.ForTenant(ctx, tenantID).Model(&models.UnitModel{}), filter)
	query = applyPaging(query, filter, UnitSortFields, "unit_number")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]property.Unit, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForTenant counts units matching the filter
func (r *GormUnitRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.ForTenant(ctx, tenantID).Model(&models.UnitModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByNumber checks if a unit number is taken within a property
func (r *GormUnitRepository) ExistsByNumber(ctx context.Context, tenantID, propertyID uuid.UUID, unitNumber string) (bool, error) {
	var count int64
	err := r.db.ForTenant(ctx, tenantID).Model(&models.UnitModel{}).
		Where("property_id = ? AND unit_number = ?", propertyID, unitNumber).
		Count(&count).Error
	return count > 0, err
}

// CreateWithHistory inserts a new unit and its creation ledger entry in one transaction
func (r *GormUnitRepository) CreateWithHistory(ctx context.Context, unit *property.Unit, entry *property.StatusHistoryEntry) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(models.UnitModelFromDomain(unit)).Error; err != nil {
			return err
		}
		return tx.Create(models.StatusHistoryModelFromDomain(entry)).Error
	})
}

// SaveTransition writes the new status and appends the ledger entry atomically.
// The unit carries the post-transition version; the stored row must still be
// at the version before it.
func (r *GormUnitRepository) SaveTransition(ctx context.Context, unit *property.Unit, entry *property.StatusHistoryEntry) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.UnitModel{}).
			Where("id = ? AND tenant_id = ? AND version = ?", unit.ID, unit.TenantID, unit.Version-1).
			Updates(map[string]any{
				"status":     unit.Status.String(),
				"status_seq": unit.StatusSeq,
				"version":    unit.Version,
				"updated_at": unit.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return tx.Create(models.StatusHistoryModelFromDomain(entry)).Error
	})
}

// Update writes descriptive fields and bumps the version. Status is never written here.
func (r *GormUnitRepository) Update(ctx context.Context, unit *property.Unit) error {
	m := models.UnitModelFromDomain(unit)
	m.Version = unit.Version + 1
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}

	result := r.db.Session(ctx).Model(m).
		Where("tenant_id = ? AND version = ?", unit.TenantID, unit.Version).
		Select("rent_amount", "attributes", "occupant_id", "occupant_name", "updated_at", "version").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	unit.Version = m.Version
	return nil
}

// DeleteForTenant physically removes a unit and its ledger
func (r *GormUnitRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND unit_id = ?", tenantID, id).
			Delete(&models.StatusHistoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.UnitModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return property.ErrUnitNotFound
		}
		return nil
	})
}

func (r *GormUnitRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("unit_number LIKE ?", "%"+filter.Search+"%")
	}
	switch v := filter.Criteria["property_id"].(type) {
	case uuid.UUID:
		query = query.Where("property_id = ?", v)
	case string:
		if id, err := uuid.Parse(v); err == nil {
			query = query.Where("property_id = ?", id)
		}
	}
	switch v := filter.Criteria["status"].(type) {
	case property.UnitStatus:
		query = query.Where("status = ?", v.String())
	case string:
		if v != "" {
			query = query.Where("status = ?", v)
		}
	}
	return query
}

var _ property.UnitRepository = (*GormUnitRepository)(nil)
