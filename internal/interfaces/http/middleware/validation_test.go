package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveRequest struct {
	Status string `json:"status" binding:"required,unit_status"`
	Note   string `json:"note" binding:"max=5"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))
	return v
}

func TestUnitStatusTag(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(moveRequest{Status: "occupied"}))
	assert.NoError(t, v.Struct(moveRequest{Status: "blocked"}))

	err := v.Struct(moveRequest{Status: "overdue"})
	require.Error(t, err)
	details := ValidationDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "status", details[0].Field)
	assert.Contains(t, details[0].Message, "maintenance")
}

func TestValidationDetails(t *testing.T) {
	v := newValidator(t)

	details := ValidationDetails(v.Struct(moveRequest{Note: "too long"}))
	require.Len(t, details, 2)
	assert.Equal(t, "This field is required", details[0].Message)
	assert.Equal(t, "note", details[1].Field)
	assert.Equal(t, "Must be at most 5 characters", details[1].Message)

	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
}
