package models

import (
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
)

// StatusHistoryModel is one row of the unit status ledger. Rows are inserted
// and never updated, so there is no updated_at column.
type StatusHistoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_unit_status_history_seq,priority:1"`
	Sequence   int       `gorm:"not null;uniqueIndex:idx_unit_status_history_seq,priority:2"`
	FromStatus string    `gorm:"type:varchar(20);not null"`
	ToStatus   string    `gorm:"type:varchar(20);not null"`
	ChangedBy  uuid.UUID `gorm:"type:uuid;not null"`
	ChangedAt  time.Time `gorm:"not null;index"`
	Note       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StatusHistoryModel) TableName() string {
	return "unit_status_history"
}

// ToDomain converts the model to a domain ledger entry
func (m *StatusHistoryModel) ToDomain() *property.StatusHistoryEntry {
	return &property.StatusHistoryEntry{
		ID:         m.ID,
		TenantID:   m.TenantID,
		UnitID:     m.UnitID,
		Sequence:   m.Sequence,
		FromStatus: property.UnitStatus(m.FromStatus),
		ToStatus:   property.UnitStatus(m.ToStatus),
		ChangedBy:  m.ChangedBy,
		ChangedAt:  m.ChangedAt,
		Note:       m.Note,
	}
}

// StatusHistoryModelFromDomain creates a model from a domain ledger entry
func StatusHistoryModelFromDomain(e *property.StatusHistoryEntry) *StatusHistoryModel {
	return &StatusHistoryModel{
		ID:         e.ID,
		TenantID:   e.TenantID,
		UnitID:     e.UnitID,
		Sequence:   e.Sequence,
		FromStatus: e.FromStatus.String(),
		ToStatus:   e.ToStatus.String(),
		ChangedBy:  e.ChangedBy,
		ChangedAt:  e.ChangedAt,
		Note:       e.Note,
	}
}
