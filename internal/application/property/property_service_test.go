package property

import (
	"context"
	"errors"
	"testing"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	actor := uuid.New()

	t.Run("creates property", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		svc := NewPropertyService(repo)

		repo.On("ExistsByCode", ctx, tenantID, "HV").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*property.Property")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, actor, CreatePropertyRequest{Code: "hv", Name: "Harbor View", City: "Lisbon"})
		require.NoError(t, err)
		assert.Equal(t, "HV", resp.Code)
		assert.Equal(t, "Lisbon", resp.City)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockPropertyRepository)
		svc := NewPropertyService(repo)
		repo.On("ExistsByCode", ctx, tenantID, "HV").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, actor, CreatePropertyRequest{Code: "HV", Name: "Harbor View"})
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := NewPropertyService(new(MockPropertyRepository))
		_, err := svc.Create(ctx, tenantID, actor, CreatePropertyRequest{Code: "HV", Name: " "})
		assert.Error(t, err)
	})
}

func TestPropertyService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockPropertyRepository)
	svc := NewPropertyService(repo)

	p1, _ := property.NewProperty(tenantID, "A", "Alpha")
	p2, _ := property.NewProperty(tenantID, "B", "Beta")

	repo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Criteria["city"] == "Porto"
	})).Return([]property.Property{*p1, *p2}, nil)
	repo.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(2), nil)

	items, total, err := svc.List(ctx, tenantID, PropertyListFilter{City: "Porto"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha", items[0].Name)
}
