package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBoardReadRepository_ListBoardUnits(t *testing.T) {
	f := newFixture(t)
	repo := NewGormBoardReadRepository(f.db)
	ctx := context.Background()

	a := f.createUnit(t, "101", property.UnitStatusOccupied)
	b := f.createUnit(t, "102", property.UnitStatusAvailable)
	f.createUnit(t, "103", property.UnitStatusMaintenance)

	now := time.Now()
	require.NoError(t, f.db.Create(&models.InvoiceModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID:  f.tenantID,
		UnitID:    a.ID,
		Number:    "INV-1",
		Status:    string(board.InvoiceStatusOverdue),
		DueDate:   now.AddDate(0, 0, -10),
		Amount:    decimal.RequireFromString("900.00"),
	}).Error)
	require.NoError(t, f.db.Create(&models.MaintenanceTicketModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID:  f.tenantID,
		UnitID:    b.ID,
		Title:     "Leaking tap",
		Status:    string(board.TicketStatusOpen),
		Priority:  string(board.TicketPriorityUrgent),
	}).Error)
	// Another tenant's ticket on the same unit id must not leak in.
	require.NoError(t, f.db.Create(&models.MaintenanceTicketModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID:  uuid.New(),
		UnitID:    b.ID,
		Status:    string(board.TicketStatusOpen),
		Priority:  string(board.TicketPriorityLow),
	}).Error)

	t.Run("returns every unit with nested summaries", func(t *testing.T) {
		units, total, err := repo.ListBoardUnits(ctx, f.tenantID, board.ReadQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, units, 3)

		assert.Equal(t, "101", units[0].UnitNumber)
		assert.Equal(t, "Elm Court", units[0].PropertyName)
		require.Len(t, units[0].Invoices, 1)
		assert.True(t, units[0].Invoices[0].IsOverdue(now))

		require.Len(t, units[1].Tickets, 1)
		assert.Equal(t, board.TicketPriorityUrgent, units[1].Tickets[0].Priority)

		assert.NotNil(t, units[2].Invoices)
		assert.NotNil(t, units[2].Tickets)
		assert.Empty(t, units[2].Tickets)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := property.UnitStatusAvailable
		units, total, err := repo.ListBoardUnits(ctx, f.tenantID, board.ReadQuery{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, units, 1)
		assert.Equal(t, b.ID, units[0].ID)
	})

	t.Run("pages", func(t *testing.T) {
		units, total, err := repo.ListBoardUnits(ctx, f.tenantID, board.ReadQuery{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, units, 1)
		assert.Equal(t, "103", units[0].UnitNumber)
	})

	t.Run("unknown tenant is empty", func(t *testing.T) {
		units, total, err := repo.ListBoardUnits(ctx, uuid.New(), board.ReadQuery{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, units)
	})

	t.Run("nil tenant is rejected", func(t *testing.T) {
		_, _, err := repo.ListBoardUnits(ctx, uuid.Nil, board.ReadQuery{})
		assert.Error(t, err)
	})
}
