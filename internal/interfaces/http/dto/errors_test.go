package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_STATUS", ErrCodeInvalidStatus},
		{"TRANSITION_IN_PROGRESS", ErrCodeTransitionInProgress},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"MOVE_PENDING", ErrCodeMovePending},
		{"INVALID_RENT", ErrCodeValidation},
		{"INVALID_UNIT_NUMBER", ErrCodeValidation},
		{ErrCodeBodyTooLarge, ErrCodeBodyTooLarge},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.input))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		domainCode string
		want       int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"INVALID_STATUS", http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_OCCUPANT", http.StatusBadRequest},
		{"TRANSITION_IN_PROGRESS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"FORBIDDEN", http.StatusForbidden},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.domainCode, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(NormalizeErrorCode(tt.domainCode)))
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Unit not found", "req-1")
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeNotFound, errInfo["code"])
	assert.Equal(t, "req-1", errInfo["request_id"])
	assert.NotContains(t, errInfo, "details")
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "status", Message: "must be a unit status"},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int
	}{
		{0, 20, 0},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta([]string{}, tt.total, 1, tt.pageSize)
		assert.True(t, resp.Success)
		assert.Equal(t, tt.pages, resp.Meta.TotalPages)
	}
}

func TestListRequest_Normalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)

	r = ListRequest{Page: 3, PageSize: 50}
	r.Normalize()
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 50, r.PageSize)
}
