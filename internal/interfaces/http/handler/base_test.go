package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/interfaces/http/dto"
	"github.com/estateflow/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// withScope stands in for the JWT and tenant middleware
func withScope(tenantID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "test-request")
		c.Set(middleware.TenantIDKey, tenantID)
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func doRequest(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound, "Resource not found"},
		{"wrapped conflict", fmt.Errorf("save: %w", shared.ErrConcurrencyConflict), http.StatusConflict, dto.ErrCodeConcurrencyConflict, ""},
		{"in progress", shared.ErrTransitionInProgress, http.StatusConflict, dto.ErrCodeTransitionInProgress, ""},
		{"invalid status", shared.ErrInvalidStatus, http.StatusBadRequest, dto.ErrCodeInvalidStatus, ""},
		{"field error", shared.NewDomainError("INVALID_RENT", "Rent must not be negative"), http.StatusBadRequest, dto.ErrCodeValidation, "Rent"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(withScope(uuid.New(), uuid.New()))
			r.GET("/", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doRequest(r, http.MethodGet, "/", "")
			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "test-request", resp.Error.RequestID)
			assert.NotContains(t, resp.Error.Message, "pq:")
			if tt.contains != "" {
				assert.Contains(t, resp.Error.Message, tt.contains)
			}
		})
	}
}

func TestScope_MissingTenant(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		if _, ok := h.scope(c); ok {
			c.Status(http.StatusOK)
		}
	})

	w := doRequest(r, http.MethodGet, "/", "", "X-Tenant-ID", uuid.NewString())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBindError(t *testing.T) {
	type body struct {
		Status string `json:"status" binding:"required,unit_status"`
	}
	h := &BaseHandler{}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			h.BindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := doRequest(r, http.MethodPost, "/", `{"status":"vacant"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "status", resp.Error.Details[0].Field)

	w = doRequest(r, http.MethodPost, "/", `{"status":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)
}
