package board

import (
	"time"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/google/uuid"
)

// LoadBoardRequest selects the filters and display language of the board
type LoadBoardRequest struct {
	Filter board.FilterState
	Locale string
}

// BoardResponse is the computed board: one column per status plus stats for
// the visible units
type BoardResponse struct {
	Columns       []board.Column    `json:"columns"`
	Stats         board.Stats       `json:"stats"`
	Filter        board.FilterState `json:"filter"`
	FilteredCount int               `json:"filtered_count"`
	TotalCount    int               `json:"total_count"`
	Locale        string            `json:"locale"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// BoardUnitsQuery is the server-side narrowing of the bulk read call
type BoardUnitsQuery struct {
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,unit_status"`
	Page       int    `form:"page" binding:"min=0"`
	PageSize   int    `form:"page_size" binding:"min=0,max=500"`
}

// BoardFilterQuery is the query-string form of board.FilterState
type BoardFilterQuery struct {
	Search      string `form:"search" binding:"max=200"`
	PropertyID  string `form:"property_id" binding:"omitempty,uuid"`
	Urgent      bool   `form:"urgent"`
	Overdue     bool   `form:"overdue"`
	Maintenance bool   `form:"maintenance"`
}

// ToFilterState converts the query into a FilterState
func (q BoardFilterQuery) ToFilterState() board.FilterState {
	f := board.FilterState{
		Search:          q.Search,
		UrgentOnly:      q.Urgent,
		OverdueOnly:     q.Overdue,
		MaintenanceOnly: q.Maintenance,
	}
	if id, err := uuid.Parse(q.PropertyID); err == nil {
		f.PropertyID = &id
	}
	return f
}
