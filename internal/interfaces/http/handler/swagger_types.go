package handler

import "github.com/estateflow/backend/internal/interfaces/http/dto"

// Envelope shapes referenced by the swagger annotations. Handlers always
// write dto.Response; these only give the generator concrete data types.

// APIResponse is a successful single-object response
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListResponse is a successful page of results
type ListResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse is any failed request
type ErrorResponse struct {
	Success bool          `json:"success" example:"false"`
	Error   dto.ErrorInfo `json:"error"`
}
