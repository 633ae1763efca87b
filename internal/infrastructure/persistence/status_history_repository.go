package persistence

import (
	"context"
	"errors"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/estateflow/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrHistoryEntryNotFound is returned when a unit has no ledger entries
var ErrHistoryEntryNotFound = shared.NewDomainError(shared.ErrNotFound.Code, "Status history entry not found")

// GormStatusHistoryRepository implements property.StatusHistoryRepository using GORM
type GormStatusHistoryRepository struct {
	db *tenant.TenantDB
}

// NewGormStatusHistoryRepository creates a new GormStatusHistoryRepository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: tenant.NewTenantDB(db)}
}

// Append records one ledger entry
func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry *property.StatusHistoryEntry) error {
	return r.db.Session(ctx).Create(models.StatusHistoryModelFromDomain(entry)).Error
}

// FindByUnit returns entries for a unit, most recent first
func (r *GormStatusHistoryRepository) FindByUnit(ctx context.Context, tenantID, unitID uuid.UUID, limit int) ([]property.StatusHistoryEntry, error) {
	var rows []models.StatusHistoryModel
	query := r.db.ForTenant(ctx, tenantID).
		Where("unit_id = ?", unitID).
		Order("sequence DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]property.StatusHistoryEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindLatest returns the head of a unit's ledger
func (r *GormStatusHistoryRepository) FindLatest(ctx context.Context, tenantID, unitID uuid.UUID) (*property.StatusHistoryEntry, error) {
	var row models.StatusHistoryModel
	err := r.db.ForTenant(ctx, tenantID).
		Where("unit_id = ?", unitID).
		Order("sequence DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryEntryNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// CountByUnit counts entries for a unit
func (r *GormStatusHistoryRepository) CountByUnit(ctx context.Context, tenantID, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.ForTenant(ctx, tenantID).Model(&models.StatusHistoryModel{}).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}

type ledgerMismatchRow struct {
	TenantID       uuid.UUID
	UnitID         uuid.UUID
	UnitNumber     string
	UnitStatus     string
	UnitSeq        int
	LedgerStatus   *string
	LedgerSequence *int
}

const ledgerMismatchQuery = `
SELECT u.tenant_id, u.id AS unit_id, u.unit_number, u.status AS unit_status, u.status_seq AS unit_seq,
       h.to_status AS ledger_status, h.sequence AS ledger_sequence
FROM units u
LEFT JOIN unit_status_history h
  ON h.unit_id = u.id
 AND h.sequence = (SELECT MAX(h2.sequence) FROM unit_status_history h2 WHERE h2.unit_id = u.id)
WHERE h.id IS NULL OR h.to_status <> u.status OR h.sequence <> u.status_seq
ORDER BY u.tenant_id, u.unit_number`

// FindMismatches scans every unit across tenants for ledger drift
func (r *GormStatusHistoryRepository) FindMismatches(ctx context.Context) ([]property.LedgerMismatch, error) {
	var rows []ledgerMismatchRow
	if err := r.db.Unscoped().WithContext(ctx).Raw(ledgerMismatchQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]property.LedgerMismatch, 0, len(rows))
	for _, row := range rows {
		m := property.LedgerMismatch{
			TenantID:   row.TenantID,
			UnitID:     row.UnitID,
			UnitNumber: row.UnitNumber,
			UnitStatus: property.UnitStatus(row.UnitStatus),
			UnitSeq:    row.UnitSeq,
		}
		if row.LedgerStatus != nil {
			m.LedgerStatus = property.UnitStatus(*row.LedgerStatus)
		}
		if row.LedgerSequence != nil {
			m.LedgerSequence = *row.LedgerSequence
		}
		out = append(out, m)
	}
	return out, nil
}

var _ property.StatusHistoryRepository = (*GormStatusHistoryRepository)(nil)
