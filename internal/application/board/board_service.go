package board

import (
	"context"
	"time"

	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Localizer supplies display strings for the board
type Localizer interface {
	ColumnTitle(locale string, status property.UnitStatus) string
}

// BoardService computes the status board from the bulk unit read
type BoardService struct {
	reader    board.ReadRepository
	localizer Localizer
	logger    *zap.Logger
	now       func() time.Time
}

// NewBoardService creates a new BoardService
func NewBoardService(reader board.ReadRepository, localizer Localizer) *BoardService {
	return &BoardService{
		reader:    reader,
		localizer: localizer,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
}

// WithLogger sets the logger
func (s *BoardService) WithLogger(logger *zap.Logger) *BoardService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock overrides the time source used for overdue checks
func (s *BoardService) WithClock(now func() time.Time) *BoardService {
	s.now = now
	return s
}

// Load reads every unit of the tenant once, then filters, groups and
// aggregates in memory
func (s *BoardService) Load(ctx context.Context, tenantID uuid.UUID, req LoadBoardRequest) (*BoardResponse, error) {
	units, _, err := s.reader.ListBoardUnits(ctx, tenantID, board.ReadQuery{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := board.ApplyFilters(units, req.Filter, now)
	columns := board.GroupByStatus(filtered)
	for i := range columns {
		columns[i].Title = s.title(req.Locale, columns[i].Status)
	}

	s.logger.Debug("board computed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total_units", len(units)),
		zap.Int("visible_units", len(filtered)),
	)

	return &BoardResponse{
		Columns:       columns,
		Stats:         board.ComputeStats(filtered, now),
		Filter:        req.Filter,
		FilteredCount: len(filtered),
		TotalCount:    len(units),
		Locale:        req.Locale,
		GeneratedAt:   now,
	}, nil
}

// ListUnits is the paginated bulk read of units with nested summaries
func (s *BoardService) ListUnits(ctx context.Context, tenantID uuid.UUID, q BoardUnitsQuery) ([]board.BoardUnit, int64, error) {
	query := board.ReadQuery{Page: q.Page, PageSize: q.PageSize}
	if query.Page > 0 && query.PageSize <= 0 {
		query.PageSize = 100
	}
	if q.PropertyID != "" {
		id, err := uuid.Parse(q.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property ID")
		}
		query.PropertyID = &id
	}
	if q.Status != "" {
		status, err := property.ParseUnitStatus(q.Status)
		if err != nil {
			return nil, 0, err
		}
		query.Status = &status
	}
	return s.reader.ListBoardUnits(ctx, tenantID, query)
}

func (s *BoardService) title(locale string, status property.UnitStatus) string {
	if s.localizer == nil {
		return status.String()
	}
	return s.localizer.ColumnTitle(locale, status)
}
