package handler

import (
	propertyapp "github.com/estateflow/backend/internal/application/property"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create godoc
// @ID           createProperty
//
//	@Summary		Create a property
//	@Tags			properties
//	@Accept			json
//	@Produce		json
//	@Param			request	body		propertyapp.CreatePropertyRequest	true	"Property"
//	@Success		201		{object}	APIResponse[propertyapp.PropertyResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var req propertyapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.propertyService.Create(c.Request.Context(), scope.TenantID, scope.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// GetByID godoc
// @ID           getPropertyById
//
//	@Summary		Get a property
//	@Tags			properties
//	@Produce		json
//	@Param			id	path		string	true	"Property ID"	format(uuid)
//	@Success		200	{object}	APIResponse[propertyapp.PropertyResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.propertyService.GetByID(c.Request.Context(), scope.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// List godoc
// @ID           listProperties
//
//	@Summary		List properties
//	@Tags			properties
//	@Produce		json
//	@Param			search		query		string	false	"Code or name"
//	@Param			city		query		string	false	"City"
//	@Param			page		query		int		false	"Page"		default(1)
//	@Param			page_size	query		int		false	"Page size"	default(20)	maximum(100)
//	@Success		200			{object}	ListResponse[propertyapp.PropertyResponse]
//	@Security		BearerAuth
//	@Router			/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var filter propertyapp.PropertyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	properties, total, err := h.propertyService.List(c.Request.Context(), scope.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, properties, total, filter.Page, filter.PageSize)
}
