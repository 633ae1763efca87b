package board

import (
	"context"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice summary
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// TicketStatus is the state of a maintenance ticket summary
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsActive reports whether the ticket still needs work
func (s TicketStatus) IsActive() bool {
	return s == TicketStatusOpen || s == TicketStatusInProgress
}

// TicketPriority ranks a maintenance ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// InvoiceSummary is the slice of an invoice the board needs
type InvoiceSummary struct {
	ID      uuid.UUID       `json:"id"`
	Number  string          `json:"number,omitempty"`
	Status  InvoiceStatus   `json:"status"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// IsOverdue reports whether the invoice is marked overdue and its due date is
// strictly before now
func (i InvoiceSummary) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusOverdue && i.DueDate.Before(now)
}

// TicketSummary is the slice of a maintenance ticket the board needs
type TicketSummary struct {
	ID       uuid.UUID      `json:"id"`
	Title    string         `json:"title,omitempty"`
	Status   TicketStatus   `json:"status"`
	Priority TicketPriority `json:"priority"`
}

// BoardUnit is the read model of a unit card with its nested summaries
type BoardUnit struct {
	ID           uuid.UUID               `json:"id"`
	TenantID     uuid.UUID               `json:"tenant_id"`
	PropertyID   uuid.UUID               `json:"property_id"`
	PropertyName string                  `json:"property_name"`
	UnitNumber   string                  `json:"unit_number"`
	Status       property.UnitStatus     `json:"status"`
	RentAmount   *decimal.Decimal        `json:"rent_amount,omitempty"`
	Attributes   property.UnitAttributes `json:"attributes"`
	OccupantID   *uuid.UUID              `json:"occupant_id,omitempty"`
	OccupantName string                  `json:"occupant_name,omitempty"`
	Version      int                     `json:"version"`
	Invoices     []InvoiceSummary        `json:"invoices"`
	Tickets      []TicketSummary         `json:"tickets"`
}

// ReadQuery narrows the bulk read. A zero Page returns every matching unit.
type ReadQuery struct {
	PropertyID *uuid.UUID
	Status     *property.UnitStatus
	Page       int
	PageSize   int
}

// ReadRepository loads board units with their nested summaries
type ReadRepository interface {
	ListBoardUnits(ctx context.Context, tenantID uuid.UUID, query ReadQuery) ([]BoardUnit, int64, error)
}
