package board

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FilterState is the transient set of board filters. Zero value shows everything.
type FilterState struct {
	Search          string     `json:"search,omitempty"`
	PropertyID      *uuid.UUID `json:"property_id,omitempty"`
	UrgentOnly      bool       `json:"urgent_only"`
	OverdueOnly     bool       `json:"overdue_only"`
	MaintenanceOnly bool       `json:"maintenance_only"`
}

// IsEmpty reports whether no filter is active
func (f FilterState) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.PropertyID == nil &&
		!f.UrgentOnly && !f.OverdueOnly && !f.MaintenanceOnly
}

// Predicate decides whether a unit passes one filter
type Predicate func(u BoardUnit) bool

// Predicates returns one predicate per active filter
func (f FilterState) Predicates(now time.Time) []Predicate {
	var ps []Predicate
	if term := strings.TrimSpace(f.Search); term != "" {
		ps = append(ps, func(u BoardUnit) bool { return MatchesSearch(u, term) })
	}
	if f.PropertyID != nil {
		id := *f.PropertyID
		ps = append(ps, func(u BoardUnit) bool { return u.PropertyID == id })
	}
	if f.UrgentOnly {
		ps = append(ps, func(u BoardUnit) bool { return HasUrgentIssue(u, now) })
	}
	if f.OverdueOnly {
		ps = append(ps, func(u BoardUnit) bool { return HasOverdueInvoice(u, now) })
	}
	if f.MaintenanceOnly {
		ps = append(ps, HasActiveMaintenance)
	}
	return ps
}

// ApplyFilters returns the units that satisfy every active filter, in their
// original order. The input slice is not modified.
func ApplyFilters(units []BoardUnit, f FilterState, now time.Time) []BoardUnit {
	predicates := f.Predicates(now)
	out := make([]BoardUnit, 0, len(units))
	for _, u := range units {
		if matchesAll(u, predicates) {
			out = append(out, u)
		}
	}
	return out
}

func matchesAll(u BoardUnit, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(u) {
			return false
		}
	}
	return true
}

// MatchesSearch is a case-insensitive substring match on unit number,
// property name and occupant name
func MatchesSearch(u BoardUnit, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{u.UnitNumber, u.PropertyName, u.OccupantName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// HasOverdueInvoice reports whether any invoice is overdue at now
func HasOverdueInvoice(u BoardUnit, now time.Time) bool {
	for _, inv := range u.Invoices {
		if inv.IsOverdue(now) {
			return true
		}
	}
	return false
}

// HasActiveMaintenance reports whether any ticket is open or in progress
func HasActiveMaintenance(u BoardUnit) bool {
	for _, t := range u.Tickets {
		if t.Status.IsActive() {
			return true
		}
	}
	return false
}

// HasUrgentIssue is true for a unit with an overdue invoice or an active
// urgent-priority ticket
func HasUrgentIssue(u BoardUnit, now time.Time) bool {
	if HasOverdueInvoice(u, now) {
		return true
	}
	for _, t := range u.Tickets {
		if t.Priority == TicketPriorityUrgent && t.Status.IsActive() {
			return true
		}
	}
	return false
}
