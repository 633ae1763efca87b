package board

import (
	"math"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// Stats are the headline numbers shown above the board. They describe the
// units passed in, which is the filtered set rather than the whole portfolio.
type Stats struct {
	TotalUnits         int             `json:"total_units"`
	CriticalIssues     int             `json:"critical_issues"`
	OverdueInvoices    int             `json:"overdue_invoices"`
	OverdueAmount      decimal.Decimal `json:"overdue_amount"`
	UrgentMaintenance  int             `json:"urgent_maintenance"`
	HighMaintenance    int             `json:"high_maintenance"`
	RegularMaintenance int             `json:"regular_maintenance"`
	OccupiedUnits      int             `json:"occupied_units"`
	OccupancyRate      float64         `json:"occupancy_rate"`
}

// ComputeStats derives Stats from units in a single pass
func ComputeStats(units []BoardUnit, now time.Time) Stats {
	s := Stats{TotalUnits: len(units), OverdueAmount: decimal.Zero}
	for _, u := range units {
		if HasUrgentIssue(u, now) {
			s.CriticalIssues++
		}
		if u.Status == property.UnitStatusOccupied {
			s.OccupiedUnits++
		}
		for _, inv := range u.Invoices {
			if inv.IsOverdue(now) {
				s.OverdueInvoices++
				s.OverdueAmount = s.OverdueAmount.Add(inv.Amount)
			}
		}
		for _, t := range u.Tickets {
			if !t.Status.IsActive() {
				continue
			}
			switch t.Priority {
			case TicketPriorityUrgent:
				s.UrgentMaintenance++
			case TicketPriorityHigh:
				s.HighMaintenance++
			default:
				s.RegularMaintenance++
			}
		}
	}
	if s.TotalUnits > 0 {
		rate := float64(s.OccupiedUnits) / float64(s.TotalUnits) * 100
		s.OccupancyRate = math.Round(rate*10) / 10
	}
	return s
}
