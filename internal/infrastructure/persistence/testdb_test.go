package persistence

import (
	"testing"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the estate schema.
// A single connection keeps every transaction on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.PropertyModel{},
		&models.UnitModel{},
		&models.StatusHistoryModel{},
		&models.InvoiceModel{},
		&models.MaintenanceTicketModel{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	tenantID uuid.UUID
	actorID  uuid.UUID
	property *property.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	tenantID := uuid.New()
	actorID := uuid.New()

	p, err := property.NewProperty(tenantID, "elm", "Elm Court")
	require.NoError(t, err)
	require.NoError(t, NewGormPropertyRepository(db).Save(t.Context(), p))

	return &fixture{db: db, tenantID: tenantID, actorID: actorID, property: p}
}

func (f *fixture) createUnit(t *testing.T, number string, status property.UnitStatus) *property.Unit {
	t.Helper()
	u, entry, err := property.NewUnit(f.tenantID, f.property.ID, number, status, f.actorID)
	require.NoError(t, err)
	require.NoError(t, NewGormUnitRepository(f.db).CreateWithHistory(t.Context(), u, entry))
	u.ClearDomainEvents()
	return u
}
