package board

import "github.com/estateflow/backend/internal/domain/property"

// Column is one status lane of the board
type Column struct {
	Status property.UnitStatus `json:"status"`
	Title  string              `json:"title"`
	Units  []BoardUnit         `json:"units"`
}

// Count returns the number of units in the column
func (c Column) Count() int {
	return len(c.Units)
}

// GroupByStatus partitions units into one column per known status, in the
// fixed status order. Units keep their relative order within a column.
// Empty columns are still returned.
func GroupByStatus(units []BoardUnit) []Column {
	statuses := property.AllUnitStatuses()
	index := make(map[property.UnitStatus]int, len(statuses))
	columns := make([]Column, len(statuses))
	for i, s := range statuses {
		index[s] = i
		columns[i] = Column{Status: s, Units: []BoardUnit{}}
	}
	for _, u := range units {
		i, ok := index[u.Status]
		if !ok {
			continue
		}
		columns[i].Units = append(columns[i].Units, u)
	}
	return columns
}
