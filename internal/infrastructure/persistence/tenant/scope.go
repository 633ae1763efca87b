// Package tenant scopes GORM queries to one organization.
//
// Tenant IDs are always passed in explicitly; nothing here reads them from
// request context.
//
//	tdb := tenant.NewTenantDB(gormDB)
//	tdb.ForTenant(ctx, tenantID).Find(&units) // WHERE tenant_id = ?
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when an operation is attempted without a tenant
var ErrTenantIDRequired = errors.New("tenant_id is required")

// TenantScope applies tenant filtering to GORM queries
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return TenantColumnScope("tenant_id", tenantID)
}

// TenantColumnScope filters on a qualified column, for joined queries
func TenantColumnScope(column string, tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(column+" = ?", tenantID)
	}
}

// TenantDB wraps a GORM DB and hands out tenant-scoped sessions
type TenantDB struct {
	db *gorm.DB
}

// NewTenantDB creates a new TenantDB
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db}
}

// ForTenant returns a session bound to ctx and filtered to tenantID
func (t *TenantDB) ForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return t.db.WithContext(ctx).Scopes(TenantScope(tenantID))
}

// Session returns a session bound to ctx without tenant filtering, for
// inserts and explicitly qualified queries
func (t *TenantDB) Session(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// Transaction runs fn in a transaction bound to ctx
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}

// Unscoped returns the underlying DB. Only cross-tenant maintenance jobs use it.
func (t *TenantDB) Unscoped() *gorm.DB {
	return t.db
}
