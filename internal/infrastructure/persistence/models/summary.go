package models

import (
	"time"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel maps the invoices table. This service only reads it.
type InvoiceModel struct {
	BaseModel
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number   string          `gorm:"type:varchar(50)"`
	Status   string          `gorm:"type:varchar(20);not null"`
	DueDate  time.Time       `gorm:"not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToSummary converts the row to a board invoice summary
func (m *InvoiceModel) ToSummary() board.InvoiceSummary {
	return board.InvoiceSummary{
		ID:      m.ID,
		Number:  m.Number,
		Status:  board.InvoiceStatus(m.Status),
		DueDate: m.DueDate,
		Amount:  m.Amount,
	}
}

// MaintenanceTicketModel maps the maintenance_tickets table. This service only reads it.
type MaintenanceTicketModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title    string    `gorm:"type:varchar(200)"`
	Status   string    `gorm:"type:varchar(20);not null"`
	Priority string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (MaintenanceTicketModel) TableName() string {
	return "maintenance_tickets"
}

// ToSummary converts the row to a board ticket summary
func (m *MaintenanceTicketModel) ToSummary() board.TicketSummary {
	return board.TicketSummary{
		ID:       m.ID,
		Title:    m.Title,
		Status:   board.TicketStatus(m.Status),
		Priority: board.TicketPriority(m.Priority),
	}
}
