package board

import (
	"math/rand"
	"testing"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByStatus_StablePartition(t *testing.T) {
	first := BoardUnit{ID: uuid.New(), UnitNumber: "1", Status: property.UnitStatusAvailable}
	second := BoardUnit{ID: uuid.New(), UnitNumber: "2", Status: property.UnitStatusOccupied}
	third := BoardUnit{ID: uuid.New(), UnitNumber: "3", Status: property.UnitStatusAvailable}

	columns := GroupByStatus([]BoardUnit{first, second, third})

	require.Len(t, columns, 6)
	for i, s := range property.AllUnitStatuses() {
		assert.Equal(t, s, columns[i].Status)
	}
	assert.Equal(t, []string{"1", "3"}, unitNumbers(columns[0].Units))
	assert.Equal(t, []string{"2"}, unitNumbers(columns[1].Units))
	for _, c := range columns[2:] {
		assert.Equal(t, 0, c.Count(), c.Status.String())
		assert.NotNil(t, c.Units)
	}
}

func TestGroupByStatus_Empty(t *testing.T) {
	columns := GroupByStatus(nil)
	require.Len(t, columns, 6)
	for _, c := range columns {
		assert.Empty(t, c.Units)
	}
}

func TestGroupByStatus_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		units := randomUnits(rng, rng.Intn(40), []uuid.UUID{uuid.New(), uuid.New()})
		filtered := ApplyFilters(units, FilterState{
			UrgentOnly:  rng.Intn(3) == 0,
			OverdueOnly: rng.Intn(3) == 0,
		}, testNow)

		columns := GroupByStatus(filtered)

		total := 0
		seen := make(map[uuid.UUID]int)
		for _, c := range columns {
			total += c.Count()
			for _, u := range c.Units {
				assert.Equal(t, c.Status, u.Status)
				seen[u.ID]++
			}
		}
		assert.Equal(t, len(filtered), total)
		for _, u := range filtered {
			assert.Equal(t, 1, seen[u.ID])
		}
	}
}
