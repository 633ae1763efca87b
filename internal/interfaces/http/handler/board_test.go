package handler

import (
	"net/http"
	"testing"

	boardapp "github.com/estateflow/backend/internal/application/board"
	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/infrastructure/i18n"
	"github.com/estateflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBoardRouter(reader *MockBoardReader, tenantID uuid.UUID) *gin.Engine {
	localizer := i18n.NewLocalizer("en")
	h := NewBoardHandler(boardapp.NewBoardService(reader, localizer), localizer)
	r := gin.New()
	r.Use(withScope(tenantID, uuid.New()))
	r.GET("/board", h.GetBoard)
	r.GET("/board/units", h.ListUnits)
	return r
}

func boardUnits(tenantID uuid.UUID) []board.BoardUnit {
	propertyID := uuid.New()
	return []board.BoardUnit{
		{ID: uuid.New(), TenantID: tenantID, PropertyID: propertyID, UnitNumber: "101", Status: property.UnitStatusOccupied},
		{ID: uuid.New(), TenantID: tenantID, PropertyID: propertyID, UnitNumber: "102", Status: property.UnitStatusAvailable},
		{ID: uuid.New(), TenantID: tenantID, PropertyID: propertyID, UnitNumber: "201", Status: property.UnitStatusOccupied},
	}
}

func TestBoardHandler_GetBoard(t *testing.T) {
	tenantID := uuid.New()
	reader := new(MockBoardReader)
	reader.On("ListBoardUnits", mock.Anything, tenantID, board.ReadQuery{}).Return(boardUnits(tenantID), int64(3), nil)

	w := doRequest(setupBoardRouter(reader, tenantID), http.MethodGet, "/board?search=10", "",
		"Accept-Language", "es-ES,es;q=0.9,en;q=0.5")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "es", w.Header().Get("Content-Language"))

	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, float64(2), data["filtered_count"])
	assert.Equal(t, float64(3), data["total_count"])

	columns := data["columns"].([]any)
	require.Len(t, columns, 6)
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.(map[string]any)["title"].(string)
	}
	assert.Equal(t, []string{"Disponible", "Ocupada", "Mantenimiento", "Reservada", "Vendida", "Bloqueada"}, titles)

	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["total_units"])
	assert.Equal(t, float64(1), stats["occupied_units"])
}

func TestBoardHandler_GetBoardDefaultsToEnglish(t *testing.T) {
	tenantID := uuid.New()
	reader := new(MockBoardReader)
	reader.On("ListBoardUnits", mock.Anything, tenantID, board.ReadQuery{}).Return([]board.BoardUnit{}, int64(0), nil)

	w := doRequest(setupBoardRouter(reader, tenantID), http.MethodGet, "/board", "", "Accept-Language", "ja-JP")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
	first := decode(t, w).Data.(map[string]any)["columns"].([]any)[0].(map[string]any)
	assert.Equal(t, "Available", first["title"])
	assert.Empty(t, first["units"])
}

func TestBoardHandler_ListUnits(t *testing.T) {
	tenantID := uuid.New()
	units := boardUnits(tenantID)

	t.Run("unpaged", func(t *testing.T) {
		reader := new(MockBoardReader)
		reader.On("ListBoardUnits", mock.Anything, tenantID, board.ReadQuery{}).Return(units, int64(3), nil)

		w := doRequest(setupBoardRouter(reader, tenantID), http.MethodGet, "/board/units", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 1, resp.Meta.TotalPages)
	})

	t.Run("status filter", func(t *testing.T) {
		reader := new(MockBoardReader)
		reader.On("ListBoardUnits", mock.Anything, tenantID, mock.MatchedBy(func(q board.ReadQuery) bool {
			return q.Status != nil && *q.Status == property.UnitStatusOccupied && q.Page == 2 && q.PageSize == 1
		})).Return(units[:1], int64(2), nil)

		w := doRequest(setupBoardRouter(reader, tenantID), http.MethodGet, "/board/units?status=occupied&page=2&page_size=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		reader.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		reader := new(MockBoardReader)
		w := doRequest(setupBoardRouter(reader, tenantID), http.MethodGet, "/board/units?status=vacant", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, w).Error.Code)
		reader.AssertNotCalled(t, "ListBoardUnits", mock.Anything, mock.Anything, mock.Anything)
	})
}
