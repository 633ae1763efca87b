package persistence

import (
	"context"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/estateflow/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoardReadRepository implements board.ReadRepository. It reads units with
// their property name, then batches invoices and tickets by unit ID.
type GormBoardReadRepository struct {
	db *tenant.TenantDB
}

// NewGormBoardReadRepository creates a new GormBoardReadRepository
func NewGormBoardReadRepository(db *gorm.DB) *GormBoardReadRepository {
	return &GormBoardReadRepository{db: tenant.NewTenantDB(db)}
}

type boardUnitRow struct {
	models.UnitModel
	PropertyName string
}

// ListBoardUnits loads units for the board with nested invoice and ticket summaries
func (r *GormBoardReadRepository) ListBoardUnits(ctx context.Context, tenantID uuid.UUID, q board.ReadQuery) ([]board.BoardUnit, int64, error) {
	base := r.db.Session(ctx).Table("units").
		Joins("LEFT JOIN properties ON properties.id = units.property_id").
		Scopes(tenant.TenantColumnScope("units.tenant_id", tenantID))
	if q.PropertyID != nil {
		base = base.Where("units.property_id = ?", *q.PropertyID)
	}
	if q.Status != nil {
		base = base.Where("units.status = ?", q.Status.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Select("units.*, properties.name AS property_name").
		Order("properties.name ASC, units.unit_number ASC")
	if q.Page > 0 && q.PageSize > 0 {
		query = query.Limit(q.PageSize).Offset((q.Page - 1) * q.PageSize)
	}

	var rows []boardUnitRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []board.BoardUnit{}, total, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	invoices, err := r.invoicesByUnit(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}
	tickets, err := r.ticketsByUnit(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]board.BoardUnit, len(rows))
	for i := range rows {
		u := rows[i].ToDomain()
		out[i] = board.BoardUnit{
			ID:           u.ID,
			TenantID:     u.TenantID,
			PropertyID:   u.PropertyID,
			PropertyName: rows[i].PropertyName,
			UnitNumber:   u.UnitNumber,
			Status:       u.Status,
			RentAmount:   u.RentAmount,
			Attributes:   u.Attributes,
			OccupantID:   u.OccupantID,
			OccupantName: u.OccupantName,
			Version:      u.Version,
			Invoices:     nonNilInvoices(invoices[u.ID]),
			Tickets:      nonNilTickets(tickets[u.ID]),
		}
	}
	return out, total, nil
}

func (r *GormBoardReadRepository) invoicesByUnit(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID][]board.InvoiceSummary, error) {
	var rows []models.InvoiceModel
	if err := r.db.ForTenant(ctx, tenantID).
		Where("unit_id IN ?", ids).
		Order("due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]board.InvoiceSummary, len(ids))
	for i := range rows {
		out[rows[i].UnitID] = append(out[rows[i].UnitID], rows[i].ToSummary())
	}
	return out, nil
}

func (r *GormBoardReadRepository) ticketsByUnit(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID][]board.TicketSummary, error) {
	var rows []models.MaintenanceTicketModel
	if err := r.db.ForTenant(ctx, tenantID).
		Where("unit_id IN ?", ids).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]board.TicketSummary, len(ids))
	for i := range rows {
		out[rows[i].UnitID] = append(out[rows[i].UnitID], rows[i].ToSummary())
	}
	return out, nil
}

func nonNilInvoices(in []board.InvoiceSummary) []board.InvoiceSummary {
	if in == nil {
		return []board.InvoiceSummary{}
	}
	return in
}

func nonNilTickets(in []board.TicketSummary) []board.TicketSummary {
	if in == nil {
		return []board.TicketSummary{}
	}
	return in
}

var _ board.ReadRepository = (*GormBoardReadRepository)(nil)
