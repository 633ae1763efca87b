package tenant

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scopedRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"size:100"`
}

func (scopedRow) TableName() string {
	return "scoped_rows"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestTenantDB_ForTenant(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "scoped_rows" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}).AddRow(uuid.New(), tenantID, "a"))

	var rows []scopedRow
	err := NewTenantDB(db).ForTenant(context.Background(), tenantID).Find(&rows).Error
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantScope_NilTenant(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	var rows []scopedRow
	err := db.Scopes(TenantScope(uuid.Nil)).Find(&rows).Error
	assert.ErrorIs(t, err, ErrTenantIDRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantColumnScope(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "scoped_rows" WHERE scoped_rows.tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var rows []scopedRow
	require.NoError(t, db.Scopes(TenantColumnScope("scoped_rows.tenant_id", tenantID)).Find(&rows).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
