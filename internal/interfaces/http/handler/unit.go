package handler

import (
	"net/http"
	"strconv"

	propertyapp "github.com/estateflow/backend/internal/application/property"
	"github.com/estateflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UnitHandler handles unit endpoints, including the status change call
type UnitHandler struct {
	BaseHandler
	unitService *propertyapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *propertyapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// Create godoc
// @ID           createUnit
//
//	@Summary		Provision a unit
//	@Description	Creates the unit and the first entry of its status ledger
//	@Tags			units
//	@Accept			json
//	@Produce		json
//	@Param			request	body		propertyapp.CreateUnitRequest	true	"Unit"
//	@Success		201		{object}	APIResponse[propertyapp.UnitResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var req propertyapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), scope.TenantID, scope.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// GetByID godoc
// @ID           getUnitById
//
//	@Summary		Get a unit
//	@Tags			units
//	@Produce		json
//	@Param			id	path		string	true	"Unit ID"	format(uuid)
//	@Success		200	{object}	APIResponse[propertyapp.UnitResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	unit, err := h.unitService.GetByID(c.Request.Context(), scope.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// List godoc
// @ID           listUnits
//
//	@Summary		List units
//	@Tags			units
//	@Produce		json
//	@Param			search		query		string	false	"Unit number"
//	@Param			property_id	query		string	false	"Property ID"	format(uuid)
//	@Param			status		query		string	false	"Status"	Enums(available, occupied, maintenance, reserved, sold, blocked)
//	@Param			page		query		int		false	"Page"		default(1)
//	@Param			page_size	query		int		false	"Page size"	default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Order by"	Enums(unit_number, status, created_at, updated_at)
//	@Param			order_dir	query		string	false	"Direction"	Enums(asc, desc)
//	@Success		200			{object}	ListResponse[propertyapp.UnitResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var filter propertyapp.UnitListFilter
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

	units, total, err := h.unitService.List(c.Request.Context(), scope.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, units, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateUnit
//
//	@Summary		Update rent, attributes or occupant
//	@Description	Status cannot be changed here; use PATCH /units/{id}/status
//	@Tags			units
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Unit ID"	format(uuid)
//	@Param			request	body		propertyapp.UpdateUnitRequest	true	"Changes"
//	@Success		200		{object}	APIResponse[propertyapp.UnitResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req propertyapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), scope.TenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// TransitionStatus godoc
// @ID           transitionUnitStatus
//
//	@Summary		Change a unit's status
//	@Description	Writes the new status and appends one ledger entry atomically. Returns 409 while another change for the same unit is in flight.
//	@Tags			units
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Unit ID"	format(uuid)
//	@Param			request	body		propertyapp.TransitionStatusRequest	true	"Target status"
//	@Success		200		{object}	APIResponse[propertyapp.TransitionResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id}/status [patch]
func (h *UnitHandler) TransitionStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req propertyapp.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.unitService.Transition(c.Request.Context(), scope.TenantID, id, scope.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteUnit
//
//	@Summary		Delete a unit
//	@Description	Administrative removal of a unit and its ledger. Requires the admin role.
//	@Tags			units
//	@Param			id	path	string	true	"Unit ID"	format(uuid)
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), scope.TenantID, id, scope.UserID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// History godoc
// @ID           getUnitHistory
//
//	@Summary		Recent status history
//	@Tags			units
//	@Produce		json
//	@Param			id		path		string	true	"Unit ID"	format(uuid)
//	@Param			limit	query		int		false	"Maximum entries"
//	@Success		200		{object}	ListResponse[propertyapp.HistoryEntryResponse]
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id}/history [get]
func (h *UnitHandler) History(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.unitService.History(c.Request.Context(), scope.TenantID, id, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ExportHistory godoc
// @ID           exportUnitHistory
//
//	@Summary		Export the full status ledger
//	@Description	Chronological ledger with chain breaks and a consistency check against the unit
//	@Tags			units
//	@Produce		json
//	@Param			id	path		string	true	"Unit ID"	format(uuid)
//	@Success		200	{object}	APIResponse[propertyapp.HistoryExportResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/units/{id}/history/export [get]
func (h *UnitHandler) ExportHistory(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	export, err := h.unitService.ExportHistory(c.Request.Context(), scope.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, export)
}
