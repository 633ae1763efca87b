package handler

import (
	boardapp "github.com/estateflow/backend/internal/application/board"
	"github.com/gin-gonic/gin"
)

// LocaleNegotiator picks the board language from an Accept-Language header
type LocaleNegotiator interface {
	Negotiate(acceptLanguage string) string
}

// BoardHandler serves the status board
type BoardHandler struct {
	BaseHandler
	boardService *boardapp.BoardService
	locales      LocaleNegotiator
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService *boardapp.BoardService, locales LocaleNegotiator) *BoardHandler {
	return &BoardHandler{boardService: boardService, locales: locales}
}

// GetBoard godoc
// @ID           getBoard
//
//	@Summary		Status board
//	@Description	Units grouped into one column per status, with stats over the filtered units. Column titles follow Accept-Language.
//	@Tags			board
//	@Produce		json
//	@Param			Accept-Language	header		string	false	"Preferred language"
//	@Param			search			query		string	false	"Unit number, property or occupant"
//	@Param			property_id		query		string	false	"Property ID"	format(uuid)
//	@Param			urgent			query		bool	false	"Only units with an urgent issue"
//	@Param			overdue			query		bool	false	"Only units with an overdue invoice"
//	@Param			maintenance		query		bool	false	"Only units with active maintenance"
//	@Success		200				{object}	APIResponse[boardapp.BoardResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var q boardapp.BoardFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	req := boardapp.LoadBoardRequest{Filter: q.ToFilterState()}
	if h.locales != nil {
		req.Locale = h.locales.Negotiate(c.GetHeader("Accept-Language"))
	}

	resp, err := h.boardService.Load(c.Request.Context(), scope.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Language", resp.Locale)
	h.Success(c, resp)
}

// ListUnits godoc
// @ID           listBoardUnits
//
//	@Summary		Board units with nested summaries
//	@Description	Bulk read of units with property name, occupant, invoice and ticket summaries. Unpaginated when page is omitted.
//	@Tags			board
//	@Produce		json
//	@Param			property_id	query		string	false	"Property ID"	format(uuid)
//	@Param			status		query		string	false	"Status"	Enums(available, occupied, maintenance, reserved, sold, blocked)
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"	maximum(500)
//	@Success		200			{object}	ListResponse[board.BoardUnit]
//	@Failure		400			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/board/units [get]
func (h *BoardHandler) ListUnits(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}

	var q boardapp.BoardUnitsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	units, total, err := h.boardService.ListUnits(c.Request.Context(), scope.TenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := q.Page, q.PageSize
	if page <= 0 {
		page, pageSize = 1, len(units)
	} else if pageSize <= 0 {
		pageSize = 100
	}
	h.SuccessWithMeta(c, units, total, page, pageSize)
}
