// Package models contains the GORM persistence models. Domain types carry no
// ORM tags; every table is mapped here and converted with ToDomain / FromDomain.
//
// Files:
//   - base.go: shared columns (id, timestamps, version, tenant)
//   - property.go: properties and units
//   - status_history.go: the append-only unit status ledger
//   - summary.go: read-only invoice and maintenance ticket summaries
package models
