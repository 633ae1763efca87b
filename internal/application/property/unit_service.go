package property

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// UnitService handles unit lifecycle operations. Transition is the only path
// that changes a unit's status.
type UnitService struct {
	unitRepo     property.UnitRepository
	historyRepo  property.StatusHistoryRepository
	propertyRepo property.PropertyRepository
	locks        shared.LockStore
	lockTTL      time.Duration
	events       shared.EventPublisher
	logger       *zap.Logger
	historyLimit int
	historyMax   int
}

// NewUnitService creates a new UnitService
func NewUnitService(
	unitRepo property.UnitRepository,
	historyRepo property.StatusHistoryRepository,
	propertyRepo property.PropertyRepository,
) *UnitService {
	return &UnitService{
		unitRepo:     unitRepo,
		historyRepo:  historyRepo,
		propertyRepo: propertyRepo,
		lockTTL:      shared.DefaultLockConfig().TTL,
		logger:       zap.NewNop(),
		historyLimit: defaultHistoryLimit,
		historyMax:   maxHistoryLimit,
	}
}

// WithLockStore guards transitions so only one change per unit is in flight
func (s *UnitService) WithLockStore(store shared.LockStore, ttl time.Duration) *UnitService {
	s.locks = store
	if ttl > 0 {
		s.lockTTL = ttl
	}
	return s
}

// WithEventPublisher sets the publisher used after a change commits
func (s *UnitService) WithEventPublisher(publisher shared.EventPublisher) *UnitService {
	s.events = publisher
	return s
}

// WithLogger sets the logger
func (s *UnitService) WithLogger(logger *zap.Logger) *UnitService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithHistoryLimits sets the default and maximum number of entries returned for display
func (s *UnitService) WithHistoryLimits(def, max int) *UnitService {
	if def > 0 {
		s.historyLimit = def
	}
	if max > 0 {
		s.historyMax = max
	}
	if s.historyLimit > s.historyMax {
		s.historyLimit = s.historyMax
	}
	return s
}

// Create provisions a unit together with its creation ledger entry
func (s *UnitService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateUnitRequest) (*UnitResponse, error) {
	if _, err := s.propertyRepo.FindByIDForTenant(ctx, tenantID, req.PropertyID); err != nil {
		return nil, err
	}

	exists, err := s.unitRepo.ExistsByNumber(ctx, tenantID, req.PropertyID, strings.TrimSpace(req.UnitNumber))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit with this number already exists in the property")
	}

	initial := property.UnitStatusAvailable
	if req.Status != "" {
		initial, err = property.ParseUnitStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	unit, entry, err := property.NewUnit(tenantID, req.PropertyID, req.UnitNumber, initial, actorID)
	if err != nil {
		return nil, err
	}
	if req.RentAmount != nil {
		if err := unit.SetRentAmount(req.RentAmount); err != nil {
			return nil, err
		}
	}
	if req.Attributes != nil {
		if err := unit.SetAttributes(req.Attributes.toDomain()); err != nil {
			return nil, err
		}
	}
	if req.OccupantID != nil {
		if err := unit.AssignOccupant(*req.OccupantID, req.OccupantName); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.CreateWithHistory(ctx, unit, entry); err != nil {
		return nil, err
	}
	s.publish(ctx, unit)

	response := ToUnitResponse(unit)
	return &response, nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// List retrieves units with filtering and pagination
func (s *UnitService) List(ctx context.Context, tenantID uuid.UUID, filter UnitListFilter) ([]UnitResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultPageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "unit_number"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property ID")
		}
		domainFilter = domainFilter.Where("property_id", id)
	}
	if filter.Status != "" {
		status, err := property.ParseUnitStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter = domainFilter.Where("status", status)
	}

	units, err := s.unitRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.unitRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUnitResponses(units), total, nil
}

// Update changes rent, attributes or occupant. It never changes status.
func (s *UnitService) Update(ctx context.Context, tenantID, unitID uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	switch {
	case req.ClearRent:
		if err := unit.SetRentAmount(nil); err != nil {
			return nil, err
		}
	case req.RentAmount != nil:
		if err := unit.SetRentAmount(req.RentAmount); err != nil {
			return nil, err
		}
	}
	if req.Attributes != nil {
		if err := unit.SetAttributes(req.Attributes.toDomain()); err != nil {
			return nil, err
		}
	}
	switch {
	case req.ClearOccupant:
		unit.ClearOccupant()
	case req.OccupantID != nil:
		name := unit.OccupantName
		if req.OccupantName != nil {
			name = *req.OccupantName
		}
		if err := unit.AssignOccupant(*req.OccupantID, name); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// Transition moves a unit to a new status on behalf of actorID. The unit row
// and the new ledger entry are written in one transaction. While a change for
// the unit is in flight a second one is rejected.
func (s *UnitService) Transition(ctx context.Context, tenantID, unitID, actorID uuid.UUID, req TransitionStatusRequest) (_ *TransitionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "unit", "transition",
		attribute.String("tenant.id", tenantID.String()),
		attribute.String("unit.id", unitID.String()),
		attribute.String("unit.target_status", req.Status),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	target, err := property.ParseUnitStatus(req.Status)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}
	defer release()

	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	entry, err := unit.ChangeStatus(target, actorID, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.SaveTransition(ctx, unit, entry); err != nil {
		s.logger.Warn("unit status change not persisted",
			zap.String("tenant_id", tenantID.String()),
			zap.String("unit_id", unitID.String()),
			zap.String("from_status", entry.FromStatus.String()),
			zap.String("to_status", entry.ToStatus.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("unit status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("unit_id", unitID.String()),
		zap.String("from_status", entry.FromStatus.String()),
		zap.String("to_status", entry.ToStatus.String()),
		zap.String("changed_by", actorID.String()),
	)
	s.publish(ctx, unit)

	return &TransitionResponse{
		Unit:  ToUnitResponse(unit),
		Entry: ToHistoryEntryResponse(entry),
	}, nil
}

// History returns the most recent ledger entries for a unit, newest first.
// limit is clamped to the configured maximum; zero means the default.
func (s *UnitService) History(ctx context.Context, tenantID, unitID uuid.UUID, limit int) ([]HistoryEntryResponse, error) {
	if _, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > s.historyMax {
		limit = s.historyMax
	}

	entries, err := s.historyRepo.FindByUnit(ctx, tenantID, unitID, limit)
	if err != nil {
		return nil, err
	}
	return ToHistoryEntryResponses(entries), nil
}

// ExportHistory returns the complete ledger of a unit in chronological order,
// together with any chain breaks and a check of the ledger head against the unit.
func (s *UnitService) ExportHistory(ctx context.Context, tenantID, unitID uuid.UUID) (*HistoryExportResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByUnit(ctx, tenantID, unitID, 0)
	if err != nil {
		return nil, err
	}
	property.SortChronological(entries)

	resp := &HistoryExportResponse{
		UnitID:        unit.ID,
		UnitNumber:    unit.UnitNumber,
		CurrentStatus: unit.Status.String(),
		Entries:       ToHistoryEntryResponses(entries),
		ChainBreaks:   property.VerifyHistoryChain(entries),
		ExportedAt:    time.Now(),
	}
	if resp.ChainBreaks == nil {
		resp.ChainBreaks = []property.ChainBreak{}
	}

	var head *property.StatusHistoryEntry
	if len(entries) > 0 {
		head = &entries[len(entries)-1]
	}
	if err := property.CheckLedgerConsistency(unit, head); err != nil {
		resp.Problem = err.Error()
	}
	resp.Consistent = len(resp.ChainBreaks) == 0 && resp.Problem == ""

	if !resp.Consistent {
		s.logger.Warn("unit ledger inconsistent",
			zap.String("tenant_id", tenantID.String()),
			zap.String("unit_id", unitID.String()),
			zap.Int("chain_breaks", len(resp.ChainBreaks)),
			zap.String("problem", resp.Problem),
		)
	}
	return resp, nil
}

// Delete physically removes a unit and its ledger. This is an administrative
// escape hatch; the normal end of life is a move to sold or blocked.
func (s *UnitService) Delete(ctx context.Context, tenantID, unitID, actorID uuid.UUID) error {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, unitID)
	if err != nil {
		return err
	}
	if err := s.unitRepo.DeleteForTenant(ctx, tenantID, unitID); err != nil {
		return err
	}
	unit.MarkDeleted(actorID)
	s.publish(ctx, unit)
	return nil
}

func (s *UnitService) acquire(ctx context.Context, tenantID, unitID uuid.UUID) (func(), error) {
	if s.locks == nil {
		return func() {}, nil
	}
	key := transitionLockKey(tenantID, unitID)
	token, ok, err := s.locks.TryAcquire(ctx, key, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire transition lock: %w", err)
	}
	if !ok {
		return nil, shared.ErrTransitionInProgress
	}
	return func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.logger.Warn("failed to release transition lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *UnitService) publish(ctx context.Context, unit *property.Unit) {
	events := unit.GetDomainEvents()
	unit.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish unit events",
			zap.String("unit_id", unit.ID.String()),
			zap.Error(err),
		)
	}
}

func transitionLockKey(tenantID, unitID uuid.UUID) string {
	return "unit-transition:" + tenantID.String() + ":" + unitID.String()
}
