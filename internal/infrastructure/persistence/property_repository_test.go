package persistence

import (
	"context"
	"testing"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPropertyRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for _, p := range []struct{ code, name, city string }{
		{"elm", "Elm Court", "Austin"},
		{"oak", "Oak Tower", "Denver"},
		{"pine", "Pine Lofts", "Austin"},
	} {
		prop, err := property.NewProperty(tenantID, p.code, p.name)
		require.NoError(t, err)
		prop.SetAddress("1 Main St", p.city)
		require.NoError(t, repo.Save(ctx, prop))
	}

	t.Run("list sorted by name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
		list, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Elm Court", list[0].Name)
		assert.Equal(t, "Pine Lofts", list[2].Name)
	})

	t.Run("filter by city and search", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter = filter.Where("city", "Austin")
		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		filter.Search = "pine"
		list, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "PINE", list[0].Code)
	})

	t.Run("exists by code is case-insensitive on input", func(t *testing.T) {
		exists, err := repo.ExistsByCode(ctx, tenantID, "oak")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, uuid.New(), "oak")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find by id", func(t *testing.T) {
		list, err := repo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)

		found, err := repo.FindByIDForTenant(ctx, tenantID, list[0].ID)
		require.NoError(t, err)
		assert.Equal(t, list[0].Code, found.Code)

		_, err = repo.FindByIDForTenant(ctx, uuid.New(), list[0].ID)
		assert.ErrorIs(t, err, property.ErrPropertyNotFound)
	})
}
